// Package pairmax finds the index pair with the largest sum across two
// enumerated integer streams, the second one shifted by a skip offset
//
// The first skip elements of the second stream are discarded. The rest are
// paired with the first stream in lockstep (k-th with k-th) until either
// stream ends. Pairs with a parse failure on either side are ignored. A new
// best needs a strictly greater sum, so the earliest of tied maxima wins.
//
// By default the baseline is zero: only a positive sum can become the best,
// and a scan whose best sum would be zero or negative reports ErrNoResult.
// WithAnySum drops the baseline so the first valid pair always qualifies.
package pairmax

import (
	"iter"

	"pairmax/internal/core/intparse"
	perr "pairmax/internal/platform/errors"
)

// Pair is the winning positions in the first and second stream and their sum
type Pair struct {
	First  int
	Second int
	Sum    int64
}

// Stats counts what a scan looked at
type Stats struct {
	Skipped  int // elements discarded from the second stream
	Compared int // lockstep pairs visited
	Invalid  int // pairs ignored because one side failed to parse
	Improved int // times the best pair changed
}

// Option configures a scan
type Option func(*config)

type config struct {
	anySum bool
	stats  *Stats
}

// WithAnySum lets zero and negative sums be reported
func WithAnySum() Option { return func(c *config) { c.anySum = true } }

// WithStats fills s with counters once the scan returns
func WithStats(s *Stats) Option { return func(c *config) { c.stats = s } }

// Scan runs the skip-then-lockstep maximization
// Returned errors: InvalidArgument for a negative skip, the fatal outcome of
// either stream (SourceRead, SkipLimit), or ErrNoResult
func Scan(first, second iter.Seq2[int, intparse.Outcome], skip int, opts ...Option) (Pair, error) {
	if skip < 0 {
		return Pair{}, perr.WithField(perr.InvalidArgf("skip must be non-negative, got %d", skip), "skip")
	}
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	var st Stats
	if cfg.stats != nil {
		defer func() { *cfg.stats = st }()
	}

	next, stop := iter.Pull2(second)
	defer stop()

	for range skip {
		_, o, ok := next()
		if !ok {
			return Pair{}, noResult()
		}
		if intparse.IsFatal(o.Err) {
			return Pair{}, o.Err
		}
		st.Skipped++
	}

	var (
		best  Pair
		found bool
	)
	for i, a := range first {
		j, b, ok := next()
		if !ok {
			break
		}
		if intparse.IsFatal(a.Err) {
			return Pair{}, a.Err
		}
		if intparse.IsFatal(b.Err) {
			return Pair{}, b.Err
		}
		st.Compared++
		if !a.OK() || !b.OK() {
			st.Invalid++
			continue
		}
		sum := a.Value + b.Value
		if (found && sum > best.Sum) || (!found && (cfg.anySum || sum > 0)) {
			best = Pair{First: i, Second: j, Sum: sum}
			found = true
			st.Improved++
		}
	}

	if !found {
		return Pair{}, noResult()
	}
	return best, nil
}

func noResult() error { return perr.WithOp(perr.ErrNoResult, "pairmax") }
