// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/apispec/oaserrors"
)

// Source names one mutually exclusive input option and whether it was given.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one of sources is set.
// pkg prefixes the message ("parser", "mcp", ...). The returned error is a
// *oaserrors.ConfigError naming the options involved.
func ValidateSingleInputSource(pkg string, sources []Source) error {
	names := make([]string, 0, len(sources))
	var set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: pkg + ": must specify an input source (use " + joinOr(names) + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: pkg + ": must specify exactly one input source",
		}
	}
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
