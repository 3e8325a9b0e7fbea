// Command pairmax-ints prints every integer parsed from a file, one per line
//
//	pairmax-ints -f numbers.txt -policy lenient
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"pairmax/internal/core/version"
	"pairmax/internal/platform/config"
	perr "pairmax/internal/platform/errors"
	"pairmax/internal/services/scan/domain"
	scanmod "pairmax/internal/services/scan/module"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := config.New()
	env := scanmod.FromConfig(root)

	flags := flag.NewFlagSet("pairmax-ints", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		path   = flags.String("f", root.Prefix("PAIRMAX_").MayString("FILE", "-"), "input file, - for stdin")
		policy = flags.String("policy", env.Policy, "strict | lenient (strict also skips bad lines here)")
		norm   = flags.Bool("normalize", env.Normalize, "fold fullwidth digits and signs before parsing")
		ver    = flags.Bool("version", false, "print build information and exit")
	)
	if err := flags.Parse(args); err != nil {
		return perr.ExitCode(perr.ErrorCodeInvalidArgument)
	}
	if *ver {
		_, _ = fmt.Fprintln(stdout, version.Info("pairmax-ints"))
		return 0
	}

	m, err := scanmod.New(root, func(o *domain.Options) {
		o.Policy = *policy
		o.Normalize = *norm
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return perr.ExitStatus(err)
	}

	ints := m.Ports().Ints
	vals := ints.Ints(context.Background(), domain.Source{Name: "stdin", R: stdin})
	if *path != "-" {
		vals = ints.IntsFile(context.Background(), *path)
	}

	w := bufio.NewWriter(stdout)
	defer func() { _ = w.Flush() }()

	for v, err := range vals {
		if err != nil {
			_ = w.Flush()
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return perr.ExitStatus(err)
		}
		_, _ = fmt.Fprintln(w, v)
	}
	return 0
}
