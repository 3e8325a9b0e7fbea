// Command pairmax-scan reports the line pair of two integer files with the largest sum
//
//	pairmax-scan -a first.txt -b second.txt -skip 5
//
// Output is "first second" (0-based line positions), plus the sum with -v.
// Flag defaults come from PAIRMAX_* env; logs go to stderr (LOG_LEVEL, LOG_FORMAT).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"pairmax/internal/core/version"
	"pairmax/internal/platform/config"
	perr "pairmax/internal/platform/errors"
	"pairmax/internal/platform/logger"
	"pairmax/internal/services/scan/domain"
	scanmod "pairmax/internal/services/scan/module"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := config.New()
	env := scanmod.FromConfig(root)
	pm := root.Prefix("PAIRMAX_")

	fs := flag.NewFlagSet("pairmax-scan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		pathA      = fs.String("a", pm.MayString("A", ""), "first input file")
		pathB      = fs.String("b", pm.MayString("B", ""), "second input file (skip applies here)")
		skip       = fs.Int("skip", env.Skip, "leading elements of -b to discard")
		policy     = fs.String("policy", env.Policy, "strict | lenient")
		maxSkipRun = fs.Int("max-skip-run", env.MaxSkipRun, "lenient: max consecutive unparsable lines (0 = unbounded)")
		maxLine    = fs.Int("max-line-bytes", env.MaxLineBytes, "longest accepted line (0 = default)")
		anySum     = fs.Bool("any-sum", env.AnySum, "report the best pair even when its sum is not positive")
		norm       = fs.Bool("normalize", env.Normalize, "fold fullwidth digits and signs before parsing")
		verbose    = fs.Bool("v", false, "also print the sum")
		showVer    = fs.Bool("version", false, "print build information and exit")
	)
	if err := fs.Parse(args); err != nil {
		return perr.ExitCode(perr.ErrorCodeInvalidArgument)
	}
	if *showVer {
		_, _ = fmt.Fprintln(stdout, version.Info("pairmax-scan"))
		return 0
	}
	if *pathA == "" || *pathB == "" {
		_, _ = fmt.Fprintln(stderr, "error: -a and -b are required")
		fs.Usage()
		return perr.ExitCode(perr.ErrorCodeInvalidArgument)
	}

	l := logger.Get()

	m, err := scanmod.New(root, func(o *domain.Options) {
		o.Skip = *skip
		o.Policy = *policy
		o.MaxSkipRun = *maxSkipRun
		o.MaxLineBytes = *maxLine
		o.AnySum = *anySum
		o.Normalize = *norm
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return perr.ExitStatus(err)
	}

	res, err := m.Ports().Runner.RunFiles(context.Background(), *pathA, *pathB)
	if err != nil {
		l.Debug().Err(err).Msg("pairmax-scan failed")
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return perr.ExitStatus(err)
	}

	if *verbose {
		_, _ = fmt.Fprintf(stdout, "%d %d %d\n", res.Pair.First, res.Pair.Second, res.Pair.Sum)
	} else {
		_, _ = fmt.Fprintf(stdout, "%d %d\n", res.Pair.First, res.Pair.Second)
	}
	return 0
}
