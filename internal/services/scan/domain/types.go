// Package domain defines the types and ports of the scan service
package domain

import (
	"context"
	"io"
	"iter"

	"pairmax/internal/core/pairmax"
)

// Options controls parsing and pairing; tags drive validation and CLI messages
type Options struct {
	Skip         int    `flag:"skip" validate:"gte=0"`
	Policy       string `flag:"policy" validate:"oneof=strict lenient"`
	MaxSkipRun   int    `flag:"max-skip-run" validate:"gte=0"`   // lenient only; 0 = unbounded
	MaxLineBytes int    `flag:"max-line-bytes" validate:"gte=0"` // 0 = adapter default
	AnySum       bool   `flag:"any-sum"`
	Normalize    bool   `flag:"normalize"`
}

// Source is one named input stream
type Source struct {
	Name string
	R    io.Reader
}

// SourceStats reports what was read from one source
type SourceStats struct {
	Name    string
	Lines   int
	Bytes   int64
	Dropped int
}

// Result is a successful scan
type Result struct {
	Pair   pairmax.Pair
	Stats  pairmax.Stats
	First  SourceStats
	Second SourceStats
}

// RunnerPort runs scans over readers or files
type RunnerPort interface {
	Run(ctx context.Context, first, second Source) (Result, error)
	RunFiles(ctx context.Context, firstPath, secondPath string) (Result, error)
}

// IntsPort streams the parsed integers of one source
type IntsPort interface {
	Ints(ctx context.Context, src Source) iter.Seq2[int64, error]
	IntsFile(ctx context.Context, path string) iter.Seq2[int64, error]
}
