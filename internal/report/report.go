// Package report persists a justify run as a TOML file: a summary of the
// latest layout, each of its lines with their badness, and a short history
// of earlier runs written to the same path.
package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/justify/internal/justify"
)

// maxHistoryEntries is the maximum number of earlier run summaries kept.
const maxHistoryEntries = 10

// Summary describes one run.
type Summary struct {
	Input        string    `toml:"input"`
	Output       string    `toml:"output"`
	GeneratedAt  time.Time `toml:"generated_at"`
	Width        int       `toml:"width"`
	Words        int       `toml:"words"`
	Lines        int       `toml:"lines"`
	TotalBadness int64     `toml:"total_badness"`
}

// Line is one output line of the latest run.
type Line struct {
	Start   int    `toml:"start"`
	End     int    `toml:"end"`
	Words   int    `toml:"words"`
	Badness int64  `toml:"badness"`
	Text    string `toml:"text"`
}

// Report is the TOML-serializable form of the report file.
type Report struct {
	Summary Summary   `toml:"summary"`
	Lines   []Line    `toml:"lines"`
	History []Summary `toml:"history,omitempty"`
}

// FromLayout builds a report for a freshly computed layout.
func FromLayout(l justify.Layout, input, output string, now time.Time) *Report {
	r := &Report{
		Summary: Summary{
			Input:        input,
			Output:       output,
			GeneratedAt:  now.UTC().Truncate(time.Second),
			Width:        l.Width,
			Words:        l.Words,
			Lines:        len(l.Lines),
			TotalBadness: l.TotalBadness,
		},
		Lines: make([]Line, len(l.Lines)),
	}
	for k, line := range l.Lines {
		r.Lines[k] = Line{
			Start:   line.Span.Start,
			End:     line.Span.End,
			Words:   line.Span.Len(),
			Badness: line.Badness,
			Text:    line.Text,
		}
	}
	return r
}

// Read loads the report at path. A missing file returns (nil, nil).
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}

// Write saves r to path. The summary already stored at path, if any, is
// rotated into r's history.
func Write(path string, r *Report) error {
	existing, err := Read(path)
	if err != nil {
		return fmt.Errorf("loading existing report: %w", err)
	}

	out := *r
	if existing != nil {
		out.History = append(existing.History, existing.Summary)
	}
	if len(out.History) > maxHistoryEntries {
		out.History = out.History[len(out.History)-maxHistoryEntries:]
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming report file: %w", err)
	}
	return nil
}
