// Package source reads script files into a bounded array of raw lines.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrTooManyLines is returned when a script exceeds the line limit and
// truncation is disabled.
type ErrTooManyLines struct {
	Max int
}

func (e *ErrTooManyLines) Error() string {
	return fmt.Sprintf("script has more than %d lines", e.Max)
}

// MaxRawLine is the longest raw line Parse accepts. Lines over the
// script's significant length are cut or rejected later, when cleaned.
const MaxRawLine = 1 << 20

// Load reads the script at path. See Parse.
func Load(path string, maxLines int, truncate bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open the file: %w", err)
	}
	defer file.Close()

	lines, err := Parse(file, maxLines, truncate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return lines, nil
}

// Parse splits r into lines, dropping carriage returns. When the input has
// more than maxLines lines, the extra lines are dropped if truncate is set
// and an error is returned otherwise.
func Parse(r io.Reader, maxLines int, truncate bool) ([]string, error) {
	lines := make([]string, 0, maxLines)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxRawLine)
	for scanner.Scan() {
		if len(lines) == maxLines {
			if truncate {
				break
			}
			return nil, &ErrTooManyLines{Max: maxLines}
		}
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
