package net

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrLineTooLong indicates a client line longer than the configured limit.
var ErrLineTooLong = errors.New("console: line too long")

// ReadLine reads one newline-terminated line from r, without the line
// ending. Lines longer than max bytes fail with ErrLineTooLong.
func ReadLine(r *bufio.Reader, max int) (string, error) {
	var b strings.Builder
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", fmt.Errorf("read line: %w", err)
		}
		if b.Len()+len(chunk) > max {
			return "", fmt.Errorf("%w: over %d bytes", ErrLineTooLong, max)
		}
		b.Write(chunk)
		if !isPrefix {
			return b.String(), nil
		}
	}
}

// WriteLine writes line followed by CRLF. Embedded line breaks are
// flattened so one reply line stays one wire line.
func WriteLine(w io.Writer, line string) error {
	line = strings.NewReplacer("\r", " ", "\n", " ").Replace(line)
	if _, err := io.WriteString(w, line+"\r\n"); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}
