// Package intparse turns positioned text lines into positioned integer outcomes
//
// One Adapter serves both failure policies. Strict emits an outcome for every
// line; Lenient drops lines that do not parse, so emitted positions have gaps
// where lines were dropped. Positions are always the original line positions.
//
// A read failure from the line source is emitted as a final failure outcome
// (code SourceRead) under either policy and ends the stream.
package intparse

import (
	"iter"
	"strconv"

	"pairmax/internal/adapters/lines"
	"pairmax/internal/core/normalize"
	perr "pairmax/internal/platform/errors"
	"pairmax/internal/platform/logger"
	pstr "pairmax/internal/platform/strings"
)

// fieldMax bounds how much of an offending line is kept on errors and in logs
const fieldMax = 64

// Outcome is a parsed value or the reason there is none
type Outcome struct {
	Value int64
	Err   error
}

// OK reports whether the outcome carries a value
func (o Outcome) OK() bool { return o.Err == nil }

// IsFatal reports whether err ends a stream (read failure or skip limit)
// as opposed to a per-line parse failure
func IsFatal(err error) bool {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeSourceRead, perr.ErrorCodeSkipLimit:
		return true
	default:
		return false
	}
}

// Option configures an Adapter
type Option func(*Adapter)

// WithMaxSkipRun bounds consecutive dropped lines; the next failure after n drops
// ends the stream with a SkipLimit outcome. 0 means unbounded
func WithMaxSkipRun(n int) Option {
	return func(a *Adapter) {
		if n >= 0 {
			a.maxSkipRun = n
		}
	}
}

// WithOnDrop observes every line the policy drops, in order
func WithOnDrop(fn func(l lines.Line, err error)) Option {
	return func(a *Adapter) { a.onDrop = fn }
}

// WithNormalizer folds each line's text before parsing
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(a *Adapter) { a.norm = n }
}

// Adapter parses lines under a Policy
type Adapter struct {
	policy     Policy
	maxSkipRun int
	onDrop     func(lines.Line, error)
	norm       *normalize.Normalizer
	log        *logger.Logger
}

// New builds an Adapter; a nil policy means Strict
func New(p Policy, opts ...Option) *Adapter {
	if p == nil {
		p = Strict()
	}
	a := &Adapter{policy: p, log: logger.Named("intparse")}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Policy returns the adapter's policy
func (a *Adapter) Policy() Policy { return a.policy }

// Parse maps src to (position, outcome) pairs in source order
func (a *Adapter) Parse(src iter.Seq2[lines.Line, error]) iter.Seq2[int, Outcome] {
	return func(yield func(int, Outcome) bool) {
		run := 0
		for l, err := range src {
			if err != nil {
				yield(l.Pos, Outcome{Err: asReadFailure(err)})
				return
			}

			v, err := a.parseLine(l)
			if err == nil {
				run = 0
				if !yield(l.Pos, Outcome{Value: v}) {
					return
				}
				continue
			}

			if a.policy.OnParseError(l, err) == Emit {
				run = 0
				if !yield(l.Pos, Outcome{Err: err}) {
					return
				}
				continue
			}

			run++
			if a.maxSkipRun > 0 && run > a.maxSkipRun {
				yield(l.Pos, Outcome{Err: perr.WithOp(perr.Newf(perr.ErrorCodeSkipLimit,
					"more than %d consecutive unparsable lines at line %d", a.maxSkipRun, l.Pos), "intparse")})
				return
			}
			a.dropped(l, err)
		}
	}
}

func (a *Adapter) parseLine(l lines.Line) (int64, error) {
	text := l.Text
	if a.norm != nil {
		text = a.norm.Normalize(text)
	}
	v, err := ParseText(text)
	if err != nil {
		err = perr.WithField(perr.Wrapf(err, perr.ErrorCodeParse, "line %d", l.Pos), pstr.TruncateUTF8(l.Text, fieldMax))
		return 0, perr.WithOp(err, "intparse")
	}
	return v, nil
}

func (a *Adapter) dropped(l lines.Line, err error) {
	a.log.Debug().
		Int("pos", l.Pos).
		Str("text", pstr.TruncateUTF8(l.Text, fieldMax)).
		Err(err).
		Msg("intparse: dropped line")
	if a.onDrop != nil {
		a.onDrop(l, err)
	}
}

// ParseText parses a signed 32-bit decimal integer: optional sign, ASCII digits, nothing else
func ParseText(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, perr.WithOp(perr.Wrap(err, perr.ErrorCodeParse, "not an integer"), "intparse")
	}
	return v, nil
}

func asReadFailure(err error) error {
	if perr.IsCode(err, perr.ErrorCodeSourceRead) {
		return err
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeSourceRead, "read line"), "intparse")
}

// Values yields the successful values of seq. Parse failures are skipped;
// a fatal outcome is yielded once as an error and ends the sequence
func Values(seq iter.Seq2[int, Outcome]) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		for _, o := range seq {
			switch {
			case o.OK():
				if !yield(o.Value, nil) {
					return
				}
			case IsFatal(o.Err):
				yield(0, o.Err)
				return
			}
		}
	}
}

// FromValues is an enumerated stream of successes at positions 0..len(vs)-1
func FromValues(vs ...int64) iter.Seq2[int, Outcome] {
	return func(yield func(int, Outcome) bool) {
		for i, v := range vs {
			if !yield(i, Outcome{Value: v}) {
				return
			}
		}
	}
}
