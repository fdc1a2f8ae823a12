package parsers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Lines splits `r` into a series of whitespace-trimmed lines.
//
// Empty lines are skipped. Everything else, including `#`, is kept as is.
func Lines(r io.Reader) SeriesParser[string] {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	return &lines{scanner: scanner}
}

type lines struct {
	scanner *bufio.Scanner
	lineNo  uint
}

func (l *lines) Position() string {
	return fmt.Sprintf("line %d", l.lineNo)
}

func (l *lines) Next(ctx context.Context) (string, error) {
	for {
		l.lineNo++

		if err := ctx.Err(); err != nil {
			return "", NewNonResumableError(err)
		}

		if !l.scanner.Scan() {
			break
		}

		text := strings.TrimSpace(l.scanner.Text())
		if len(text) == 0 {
			continue
		}

		return text, nil
	}

	if err := l.scanner.Err(); err != nil {
		// bufio.Scanner does not support continuing after an error
		return "", NewNonResumableError(err)
	}

	return "", NewNonResumableError(io.EOF)
}
