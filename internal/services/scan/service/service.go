// Package service implements the scan service
package service

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"strings"

	"pairmax/internal/adapters/lines"
	"pairmax/internal/core/intparse"
	"pairmax/internal/core/normalize"
	"pairmax/internal/core/pairmax"
	perr "pairmax/internal/platform/errors"
	"pairmax/internal/platform/logger"
	"pairmax/internal/platform/validate"
	"pairmax/internal/services/scan/domain"

	"github.com/google/uuid"
)

// openFile is a seam for tests
var openFile = func(name string) (*os.File, error) { return os.Open(name) }

// Service implements domain.RunnerPort and domain.IntsPort
type Service struct {
	Cfg    domain.Options
	policy intparse.Policy
	norm   *normalize.Normalizer
}

// New validates opts and constructs a Service
func New(opts domain.Options) (*Service, error) {
	opts.Policy = strings.ToLower(strings.TrimSpace(opts.Policy))
	if opts.Policy == "" {
		opts.Policy = intparse.PolicyStrict
	}
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}
	p, err := intparse.ByName(opts.Policy)
	if err != nil {
		return nil, err
	}
	s := &Service{Cfg: opts, policy: p}
	if opts.Normalize {
		s.norm = normalize.New()
	}
	return s, nil
}

// tracked is one source wired through the line reader and the parsing adapter
type tracked struct {
	name    string
	src     *lines.Source
	dropped int
}

func (t *tracked) stats() domain.SourceStats {
	n, b := t.src.Stats()
	return domain.SourceStats{Name: t.name, Lines: n, Bytes: b, Dropped: t.dropped}
}

func (s *Service) track(src domain.Source) (*tracked, iter.Seq2[int, intparse.Outcome]) {
	var lopts []lines.Option
	if s.Cfg.MaxLineBytes > 0 {
		lopts = append(lopts, lines.WithMaxLineBytes(s.Cfg.MaxLineBytes))
	}
	t := &tracked{name: src.Name, src: lines.New(src.R, lopts...)}

	aopts := []intparse.Option{
		intparse.WithMaxSkipRun(s.Cfg.MaxSkipRun),
		intparse.WithOnDrop(func(lines.Line, error) { t.dropped++ }),
	}
	if s.norm != nil {
		aopts = append(aopts, intparse.WithNormalizer(s.norm))
	}
	return t, intparse.New(s.policy, aopts...).Parse(t.src.All())
}

// Run scans two readers and returns the best pair with read and scan stats
func (s *Service) Run(ctx context.Context, first, second domain.Source) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	ctx = logger.WithRun(ctx, uuid.NewString(), first.Name+"|"+second.Name)
	log := logger.C(ctx)

	ta, a := s.track(first)
	tb, b := s.track(second)

	var opts []pairmax.Option
	if s.Cfg.AnySum {
		opts = append(opts, pairmax.WithAnySum())
	}
	var st pairmax.Stats
	opts = append(opts, pairmax.WithStats(&st))

	pair, err := pairmax.Scan(a, b, s.Cfg.Skip, opts...)
	res := domain.Result{Pair: pair, Stats: st, First: ta.stats(), Second: tb.stats()}

	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err).Str("code", perr.CodeOf(err).String())
	}
	ev.Str("policy", s.policy.Name()).
		Int("skip", s.Cfg.Skip).
		Int("first_lines", res.First.Lines).
		Int("second_lines", res.Second.Lines).
		Int("dropped", res.First.Dropped+res.Second.Dropped).
		Int("compared", st.Compared).
		Int("invalid_pairs", st.Invalid)
	if err != nil {
		ev.Msg("scan: no pair")
		return res, err
	}
	ev.Int("first", pair.First).Int("second", pair.Second).Int64("sum", pair.Sum).Msg("scan: done")
	return res, nil
}

// RunFiles opens both paths and scans them
func (s *Service) RunFiles(ctx context.Context, firstPath, secondPath string) (domain.Result, error) {
	fa, err := open(firstPath)
	if err != nil {
		return domain.Result{}, err
	}
	defer closeQuietly(fa)

	fb, err := open(secondPath)
	if err != nil {
		return domain.Result{}, err
	}
	defer closeQuietly(fb)

	return s.Run(ctx, domain.Source{Name: firstPath, R: fa}, domain.Source{Name: secondPath, R: fb})
}

// Ints streams the integers of src under the configured policy; parse
// failures are skipped and a fatal outcome is yielded once as an error
func (s *Service) Ints(ctx context.Context, src domain.Source) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(0, err)
			return
		}
		t, seq := s.track(src)
		for v, err := range intparse.Values(seq) {
			if !yield(v, err) {
				break
			}
		}
		st := t.stats()
		logger.C(ctx).Debug().
			Str("source", st.Name).
			Int("lines", st.Lines).
			Int64("bytes", st.Bytes).
			Int("dropped", st.Dropped).
			Msg("ints: done")
	}
}

// IntsFile opens path and streams its integers like Ints; an open failure is
// yielded once (NotFound or SourceRead) and ends the sequence
func (s *Service) IntsFile(ctx context.Context, path string) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		f, err := open(path)
		if err != nil {
			yield(0, err)
			return
		}
		defer closeQuietly(f)

		for v, err := range s.Ints(ctx, domain.Source{Name: path, R: f}) {
			if !yield(v, err) {
				return
			}
		}
	}
}

func open(path string) (*os.File, error) {
	f, err := openFile(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.WithField(perr.NotFoundf("input %s does not exist", path), path)
	}
	return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeSourceRead, "open %s", path), path)
}

func closeQuietly(f *os.File) {
	if err := f.Close(); err != nil {
		logger.Get().Error().Err(err).Str("path", f.Name()).Msg("failed to close input")
	}
}
