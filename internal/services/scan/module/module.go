package module

import (
	"pairmax/internal/platform/config"
	"pairmax/internal/services/scan/domain"
	"pairmax/internal/services/scan/service"
)

// Ports exposed by the scan module
type Ports struct {
	Runner domain.RunnerPort
	Ints   domain.IntsPort
}

// Module carries the configured scan service
type Module struct {
	opts  domain.Options
	ports Ports
}

// New builds the module from config, with overrides applied on top
// (typically CLI flags the caller saw set)
func New(cfg config.Conf, overrides ...func(*domain.Options)) (*Module, error) {
	opts := FromConfig(cfg)
	for _, o := range overrides {
		o(&opts)
	}
	svc, err := service.New(opts)
	if err != nil {
		return nil, err
	}
	return &Module{opts: opts, ports: Ports{Runner: svc, Ints: svc}}, nil
}

// Name of the module, used in logs
func (m *Module) Name() string { return "scan" }

// Options returns the effective, validated options
func (m *Module) Options() domain.Options { return m.opts }

// Ports returns the module ports
func (m *Module) Ports() Ports { return m.ports }
