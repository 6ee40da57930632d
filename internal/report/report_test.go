package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/justify/internal/justify"
)

var fixedTime = time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

func sampleReport() *Report {
	l := justify.Justify(strings.Fields("To be or not to be"), 10)
	return FromLayout(l, "input.txt", "output.txt", fixedTime)
}

func TestFromLayout(t *testing.T) {
	t.Parallel()
	r := sampleReport()

	wantSummary := Summary{
		Input:        "input.txt",
		Output:       "output.txt",
		GeneratedAt:  fixedTime,
		Width:        10,
		Words:        6,
		Lines:        2,
		TotalBadness: 9,
	}
	if diff := cmp.Diff(wantSummary, r.Summary); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}

	wantLines := []Line{
		{Start: 0, End: 3, Words: 3, Badness: 8, Text: "To  be  or"},
		{Start: 3, End: 6, Words: 3, Badness: 1, Text: "not  to be"},
	}
	if diff := cmp.Diff(wantLines, r.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.toml")

	if err := Write(path, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(sampleReport(), got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"[summary]", "total_badness = 9", "[[lines]]"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("report file missing %q:\n%s", want, raw)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should be removed, stat err = %v", err)
	}
}

func TestWrite_RotatesHistory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.toml")

	for run := 0; run < maxHistoryEntries+3; run++ {
		r := sampleReport()
		r.Summary.Width = 10 + run
		if err := Write(path, r); err != nil {
			t.Fatalf("Write run %d: %v", run, err)
		}
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Summary.Width != 10+maxHistoryEntries+2 {
		t.Errorf("current width = %d, want %d", got.Summary.Width, 10+maxHistoryEntries+2)
	}
	if len(got.History) != maxHistoryEntries {
		t.Fatalf("history has %d entries, want %d", len(got.History), maxHistoryEntries)
	}
	if last := got.History[len(got.History)-1]; last.Width != 10+maxHistoryEntries+1 {
		t.Errorf("most recent history width = %d, want %d", last.Width, 10+maxHistoryEntries+1)
	}
}

func TestRead_Missing(t *testing.T) {
	t.Parallel()
	r, err := Read(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil report, got %+v", r)
	}
}

func TestRead_Malformed(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[summary\nwidth = "), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected parse error")
	}
}
