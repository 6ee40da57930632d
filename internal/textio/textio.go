// Package textio loads word sequences from text sources and writes rendered
// lines to files or streams.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdio is the path that selects stdin for reading and stdout for writing.
const Stdio = "-"

// MaxWordLen is the longest whitespace-free token ReadWords accepts. It keeps
// the cube of any lone overlong word well inside int64 range.
const MaxWordLen = 64 * 1024

var (
	// ErrRead indicates the input source could not be read.
	ErrRead = errors.New("reading input")
	// ErrWrite indicates the output destination could not be written.
	ErrWrite = errors.New("writing output")
	// ErrWordTooLong indicates a token longer than MaxWordLen.
	ErrWordTooLong = errors.New("word too long")
)

// ReadWords splits everything in r on whitespace. No returned word is empty
// and none is longer than MaxWordLen bytes.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*MaxWordLen)
	sc.Split(bufio.ScanWords)

	var words []string
	for sc.Scan() {
		if n := len(sc.Bytes()); n > MaxWordLen {
			return nil, fmt.Errorf("%w: %w: word %d is %d bytes, limit %d",
				ErrRead, ErrWordTooLong, len(words)+1, n, MaxWordLen)
		}
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %w: word %d exceeds %d bytes",
				ErrRead, ErrWordTooLong, len(words)+1, MaxWordLen)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return words, nil
}

// LoadWords reads the words of the file at path, or of stdin when path is
// Stdio.
func LoadWords(path string) ([]string, error) {
	if path == Stdio {
		return ReadWords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// WriteLines writes each line to w followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile writes lines to path, or to stdout when path is Stdio. The file
// is written next to its destination and renamed into place, so a failed
// write leaves any existing file untouched.
func WriteFile(path string, lines []string) error {
	if path == Stdio {
		return WriteLines(os.Stdout, lines)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := WriteLines(tmp, lines); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	success = true
	return nil
}
