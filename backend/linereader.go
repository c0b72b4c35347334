package backend

import (
	"bufio"
	"io"
)

// lineReader yields data only in whole, newline-terminated lines. Parsing
// a CSV file that is still being appended to must never see a partial
// row, so reads that end mid-line report EOF and hold the fragment back
// until its terminator arrives.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(b []byte) (int, error) {
	line, err := l.r.ReadBytes('\n')
	if err != nil {
		// Stash the fragment; it becomes the prefix of the next complete
		// line.
		l.partial = append(l.partial, line...)
		return 0, io.EOF
	}
	var n int
	if len(l.partial) > 0 {
		n = copy(b, l.partial)
		l.partial = l.partial[:copy(l.partial, l.partial[n:])]
		b = b[n:]
	}
	return n + copy(b, line), nil
}
