package justify

// Line is one rendered line of a layout.
type Line struct {
	Span    Span
	Badness int64
	Text    string
}

// Layout is the complete result of justifying a word sequence.
type Layout struct {
	Width        int
	Words        int
	TotalBadness int64
	Lines        []Line
}

// Text returns the rendered lines in order.
func (l Layout) Text() []string {
	out := make([]string, len(l.Lines))
	for k, line := range l.Lines {
		out[k] = line.Text
	}
	return out
}

// Layout computes the optimal layout and returns it with per-line badness.
func (j *Justifier) Layout() Layout {
	spans := j.Spans()
	l := Layout{
		Width:        j.width,
		Words:        len(j.words),
		TotalBadness: j.TotalBadness(),
		Lines:        make([]Line, len(spans)),
	}
	for k, s := range spans {
		l.Lines[k] = Line{
			Span:    s,
			Badness: j.Badness(s.Start, s.End),
			Text:    j.Render(s),
		}
	}
	return l
}

// Justify lays out words at width in one call.
func Justify(words []string, width int) Layout {
	return New(words, width).Layout()
}
