// Package module wires the scan service from configuration
package module

import (
	"strings"

	"pairmax/internal/core/intparse"
	"pairmax/internal/platform/config"
	"pairmax/internal/services/scan/domain"
)

// FromConfig reads scan options from config with the PAIRMAX_ prefix
// Values are not validated here; service.New rejects a bad policy with a validation error
func FromConfig(cfg config.Conf) domain.Options {
	pm := cfg.Prefix("PAIRMAX_")
	return domain.Options{
		Skip:         pm.MayCount("SKIP", 0),
		Policy:       strings.ToLower(pm.MayString("POLICY", intparse.PolicyStrict)),
		MaxSkipRun:   pm.MayCount("MAX_SKIP_RUN", 0),
		MaxLineBytes: pm.MayCount("MAX_LINE_BYTES", 0),
		AnySum:       pm.MayBool("ANY_SUM", false),
		Normalize:    pm.MayBool("NORMALIZE", false),
	}
}
