package intparse

import (
	"strings"

	"pairmax/internal/adapters/lines"
	perr "pairmax/internal/platform/errors"
)

// Action is what the adapter does with a line that failed to parse
type Action uint8

const (
	// Emit surfaces the failure as an Outcome at the line's position
	Emit Action = iota
	// Drop discards the line and moves on to the next one
	Drop
)

// Policy decides the fate of lines that are not integers
// Read failures never reach a Policy; they always end the stream
type Policy interface {
	Name() string
	OnParseError(l lines.Line, err error) Action
}

// Policy names accepted by ByName
const (
	PolicyStrict  = "strict"
	PolicyLenient = "lenient"
)

type surface struct{}

func (surface) Name() string                          { return PolicyStrict }
func (surface) OnParseError(lines.Line, error) Action { return Emit }

type skip struct{}

func (skip) Name() string                          { return PolicyLenient }
func (skip) OnParseError(lines.Line, error) Action { return Drop }

// Strict emits one outcome per line read, failures included
func Strict() Policy { return surface{} }

// Lenient emits only lines that parse; failures are dropped
func Lenient() Policy { return skip{} }

// ByName resolves "strict" or "lenient" (any case)
func ByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyStrict:
		return Strict(), nil
	case PolicyLenient:
		return Lenient(), nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown parse policy %q", name), "policy")
	}
}
