package opts

import (
	"io"

	"github.com/walteh/telemetryoff/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	Debug      bool
	NoColor    bool
	NoFormat   bool
	StrictAuth bool

	// Set up before any command runs
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer

	// ExitCode is decided by the command that ran
	ExitCode int
}

// FormatEnabled reports whether patched scripts are beautified
func (o *RootOpts) FormatEnabled() bool {
	return !o.NoFormat && (o.Config == nil || o.Config.FormatEnabled())
}

// StrictAuthEnabled reports whether an unmatched auth table fails the run
func (o *RootOpts) StrictAuthEnabled() bool {
	return o.StrictAuth || (o.Config != nil && o.Config.StrictAuth)
}
