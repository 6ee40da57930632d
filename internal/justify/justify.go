// Package justify lays out a word sequence into fixed-width, fully
// justified lines. Line breaks are chosen by dynamic programming to minimize
// the total badness of the block rather than greedily filling each line.
package justify

import (
	"fmt"
	"math"
	"strings"
)

// Infeasible is the badness of a multi-word line that does not fit within
// the width even when single-spaced. It is never selected when any
// feasible alternative exists.
const Infeasible int64 = 1_000_000_000

// DefaultWidth is the line width used when none is configured.
const DefaultWidth = 80

// maxSlack is the largest slack magnitude whose cube fits in an int64.
const maxSlack = 2_097_151

// Span is the half-open range [Start, End) of words placed on one line.
type Span struct {
	Start int
	End   int
}

// Len returns the number of words on the line.
func (s Span) Len() int {
	return s.End - s.Start
}

// Justifier computes and renders the minimum-badness layout of a fixed word
// sequence at a fixed width. The cost and break tables are filled on first
// use and never change afterwards. A Justifier is not safe for concurrent
// use.
type Justifier struct {
	words []string
	width int

	// prefix[k] is the total length of words[0:k].
	prefix []int

	cost []int64
	next []int
	// lo is the lowest index whose cost has been computed; cost[k] for
	// k >= lo is final.
	lo int
}

// New returns a Justifier for words at the given width. The word slice is
// copied. A non-positive width is a programming error and panics.
func New(words []string, width int) *Justifier {
	if width <= 0 {
		panic(fmt.Sprintf("justify: width must be positive, got %d", width))
	}
	n := len(words)
	j := &Justifier{
		words:  append([]string(nil), words...),
		width:  width,
		prefix: make([]int, n+1),
		cost:   make([]int64, n+1),
		next:   make([]int, n+1),
		lo:     n,
	}
	for k, w := range j.words {
		j.prefix[k+1] = j.prefix[k] + len(w)
	}
	j.next[n] = n
	return j
}

// Width returns the target line width.
func (j *Justifier) Width() int { return j.width }

// Words returns the number of words being laid out.
func (j *Justifier) Words() int { return len(j.words) }

// fits reports whether words[i:k] fit on one line single-spaced. A single
// word always fits, whatever its length.
func (j *Justifier) fits(i, k int) bool {
	count := k - i
	if count == 1 {
		return true
	}
	return j.prefix[k]-j.prefix[i]+count-1 <= j.width
}

// Badness returns the cost of placing words[i:k] on a single line: the cube
// of the slack beyond single spacing, or Infeasible if more than one word
// is involved and they do not fit. A lone word longer than the width yields
// a negative badness. A slack whose cube does not fit in an int64 panics.
func (j *Justifier) Badness(i, k int) int64 {
	j.checkSpan(i, k)
	if !j.fits(i, k) {
		return Infeasible
	}
	slack := int64(j.width - (j.prefix[k] - j.prefix[i]) - (k - i - 1))
	if slack > maxSlack || slack < -maxSlack {
		panic(fmt.Sprintf("justify: badness of span [%d, %d) overflows int64 (slack %d)", i, k, slack))
	}
	return slack * slack * slack
}

// addCost sums two costs and panics if the result leaves the int64 range.
func addCost(a, b int64) int64 {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		panic(fmt.Sprintf("justify: total badness overflows int64 (%d + %d)", a, b))
	}
	return a + b
}

// Cost returns the minimum total badness of laying out words[i:] and
// records the optimal first break in NextStart(i).
func (j *Justifier) Cost(i int) int64 {
	if i < 0 || i > len(j.words) {
		panic(fmt.Sprintf("justify: index %d out of range [0, %d]", i, len(j.words)))
	}
	for j.lo > i {
		j.lo--
		j.solve(j.lo)
	}
	return j.cost[i]
}

// solve fills cost[i] and next[i]. Every index above i must be final.
func (j *Justifier) solve(i int) {
	n := len(j.words)
	best := addCost(j.Badness(i, i+1), j.cost[i+1])
	bestNext := i + 1
	for k := i + 2; k <= n && j.fits(i, k); k++ {
		if c := addCost(j.Badness(i, k), j.cost[k]); c < best {
			best = c
			bestNext = k
		}
	}
	j.cost[i] = best
	j.next[i] = bestNext
}

// NextStart returns the first word of the line following the line that
// starts at word i in the optimal layout. For i == Words() it returns i.
func (j *Justifier) NextStart(i int) int {
	j.Cost(i)
	return j.next[i]
}

// TotalBadness returns the minimum total badness of the whole block.
func (j *Justifier) TotalBadness() int64 {
	return j.Cost(0)
}

// Spans returns the lines of the optimal layout in order. The spans cover
// [0, Words()) without gaps or overlaps.
func (j *Justifier) Spans() []Span {
	j.Cost(0)
	n := len(j.words)
	var spans []Span
	for i := 0; i < n; {
		k := j.next[i]
		if k <= i || k > n {
			panic(fmt.Sprintf("justify: corrupt break table: next[%d] = %d", i, k))
		}
		spans = append(spans, Span{Start: i, End: k})
		i = k
	}
	return spans
}

// Render returns the words of s joined so that the line is exactly Width()
// characters wide, with gap sizes differing by at most one and the wider
// gaps on the left. A single-word line is returned unpadded.
func (j *Justifier) Render(s Span) string {
	j.checkSpan(s.Start, s.End)
	words := j.words[s.Start:s.End]
	if len(words) == 1 {
		return words[0]
	}

	gaps := len(words) - 1
	budget := j.width - (j.prefix[s.End] - j.prefix[s.Start])
	base := budget / gaps
	extra := budget % gaps

	var b strings.Builder
	b.Grow(j.width)
	for k, w := range words {
		if k > 0 {
			spaces := base
			if k <= extra {
				spaces++
			}
			b.WriteString(strings.Repeat(" ", spaces))
		}
		b.WriteString(w)
	}
	return b.String()
}

// Lines renders every line of the optimal layout in order.
func (j *Justifier) Lines() []string {
	spans := j.Spans()
	lines := make([]string, len(spans))
	for k, s := range spans {
		lines[k] = j.Render(s)
	}
	return lines
}

func (j *Justifier) checkSpan(i, k int) {
	if i < 0 || k > len(j.words) || k <= i {
		panic(fmt.Sprintf("justify: invalid span [%d, %d) over %d words", i, k, len(j.words)))
	}
}
