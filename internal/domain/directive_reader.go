package domain

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"errors"
	"strings"

	m "gitsync.dev/pkg/gitsync/internal/model"
)

const (
	commentPrefix = "#"
	byteOrderMark = "\ufeff"
	maxLineLength = 1024 * 1024

	// asciiSpace is every byte that separates tokens. Other bytes, including
	// ones that are not valid UTF-8, are kept verbatim.
	asciiSpace = " \t\v\f"
)

// DirectiveSource yields directives one at a time. ok is false once the input
// is exhausted.
type DirectiveSource interface {
	Next() (directive m.Directive, ok bool, err error)
}

// DirectiveReader tokenizes manifest lines into directives.
//
// The first whitespace-delimited token of a line is the identifier and the
// rest are fields. Double quotes group whitespace into a single field and are
// removed from it. Blank lines and lines starting with '#' produce nothing,
// but every physical line is counted.
type DirectiveReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewDirectiveReader returns a DirectiveReader consuming r.
func NewDirectiveReader(r io.Reader) *DirectiveReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	scanner.Split(scanPhysicalLines)

	return &DirectiveReader{scanner: scanner}
}

// Next returns the next directive.
func (d *DirectiveReader) Next() (m.Directive, bool, error) {
	for d.scanner.Scan() {
		d.line++

		text := d.scanner.Text()
		if d.line == 1 {
			text = strings.TrimPrefix(text, byteOrderMark)
		}

		if strings.HasPrefix(strings.TrimLeft(text, asciiSpace), commentPrefix) {
			continue
		}

		tokens, err := splitDirectiveLine(text)
		if err != nil {
			return m.Directive{}, false, &ParseError{
				Line:    d.line,
				Kind:    ErrKindTokenize,
				Message: err.Error(),
			}
		}

		if len(tokens) == 0 {
			continue
		}

		return m.Directive{ID: tokens[0], Fields: tokens[1:], Line: d.line}, true, nil
	}

	if err := d.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return m.Directive{}, false, &ParseError{
				Line:    d.line + 1,
				Kind:    ErrKindTokenize,
				Message: fmt.Sprintf("line too long (limit %d bytes)", maxLineLength),
			}
		}

		return m.Directive{}, false, fmt.Errorf("read manifest after line %d: %w", d.line, err)
	}

	return m.Directive{}, false, nil
}

// Tokenize reads every directive from r.
func Tokenize(r io.Reader) ([]m.Directive, error) {
	reader := NewDirectiveReader(r)

	var directives []m.Directive

	for {
		directive, ok, err := reader.Next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return directives, nil
		}

		directives = append(directives, directive)
	}
}

func splitDirectiveLine(line string) ([]string, error) {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
		inToken  bool
	)

	for i := 0; i < len(line); i++ {
		b := line[i]

		switch {
		case b == '"':
			inQuotes = !inQuotes
			inToken = true
		case strings.IndexByte(asciiSpace, b) >= 0 && !inQuotes:
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()

				inToken = false
			}
		default:
			current.WriteByte(b)

			inToken = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}

	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// scanPhysicalLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a lone "\r".
func scanPhysicalLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}

		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}

			return i + 1, data[:i], nil
		}

		// A trailing '\r' may be the first half of "\r\n".
		if !atEOF {
			return 0, nil, nil
		}

		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
