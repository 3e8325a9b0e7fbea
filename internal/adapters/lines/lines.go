package lines

import (
	"bufio"
	"io"
	"iter"
	"strings"

	perr "pairmax/internal/platform/errors"
)

const (
	defaultMaxLineBytes = 1 << 20
	initialBufBytes     = 64 * 1024
)

// Line is one line of text and its 0-based position in the source
type Line struct {
	Pos  int
	Text string
}

// Option configures a Source
type Option func(*Source)

// WithMaxLineBytes caps a single line, terminator excluded; a line of n bytes
// passes and a longer one fails the read
func WithMaxLineBytes(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.maxLine = n
		}
	}
}

// Source streams lines from an io.Reader. It is single use
type Source struct {
	r       io.Reader
	maxLine int
	lines   int
	bytes   int64
	used    bool
}

// New creates a Source over r
func New(r io.Reader, opts ...Option) *Source {
	s := &Source{r: r, maxLine: defaultMaxLineBytes}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FromStrings is the in-memory stand-in: each string is one line, taken verbatim
func FromStrings(ss ...string) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for i, s := range ss {
			if !yield(Line{Pos: i, Text: s}, nil) {
				return
			}
		}
	}
}

// All yields every line in order. A read failure is yielded once, wrapped as
// ErrorCodeSourceRead with Pos set to the position it would have had, and ends the sequence
// A second call yields nothing; the underlying reader is consumed by the first
func (s *Source) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		if s.used {
			return
		}
		s.used = true

		// the scanner buffer also has to hold the terminator (\r\n at most)
		maxTok := s.maxLine + 2
		sc := bufio.NewScanner(s.r)
		sc.Buffer(make([]byte, 0, min(initialBufBytes, maxTok)), maxTok)
		sc.Split(s.countingSplit)

		for sc.Scan() {
			if len(sc.Bytes()) > s.maxLine {
				yield(Line{Pos: s.lines}, s.readFailure(bufio.ErrTooLong))
				return
			}
			l := Line{Pos: s.lines, Text: sc.Text()}
			s.lines++
			if !yield(l, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Line{Pos: s.lines}, s.readFailure(err))
		}
	}
}

func (s *Source) readFailure(err error) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeSourceRead, "read line %d", s.lines), "lines")
}

// countingSplit is bufio.ScanLines that also tallies consumed bytes
func (s *Source) countingSplit(data []byte, atEOF bool) (int, []byte, error) {
	adv, tok, err := bufio.ScanLines(data, atEOF)
	s.bytes += int64(adv)
	return adv, tok, err
}

// Stats returns the number of lines yielded and bytes consumed so far
func (s *Source) Stats() (lines int, bytes int64) { return s.lines, s.bytes }

// Split is a convenience for callers holding whole text: same trimming rules as Source
func Split(text string) iter.Seq2[Line, error] {
	return New(strings.NewReader(text)).All()
}
