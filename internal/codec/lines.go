package codec

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader yields newline-delimited lines with no length limit. It mirrors
// the bufio.Scanner loop shape: call Scan until it returns false, then Err.
// A trailing "\r" is dropped, and a final line without a newline still counts.
type LineReader struct {
	r    *bufio.Reader
	text string
	err  error
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Scan advances to the next line.
func (l *LineReader) Scan() bool {
	if l.err != nil {
		return false
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
			return false
		}
		l.err = io.EOF
		if line == "" {
			return false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	l.text = strings.TrimSuffix(line, "\r")
	return true
}

// Text returns the current line without its terminator.
func (l *LineReader) Text() string { return l.text }

// Err returns the first non-EOF read error.
func (l *LineReader) Err() error {
	if errors.Is(l.err, io.EOF) {
		return nil
	}
	return l.err
}
