// Package base carries the pieces shared by every CLI command.
package base

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by all commands.
type Command struct {
	// Log is the logger for the command.
	Log hclog.Logger

	// UI is the terminal UI for the command.
	UI cli.Ui
}

// FlagSet wraps a standard flag set with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a flag set for a command.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag set's options as a help string.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	buf.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&buf, "  -%s\n      %s", fl.Name, fl.Usage)
		if fl.DefValue != "" {
			fmt.Fprintf(&buf, " (default: %s)", fl.DefValue)
		}
		buf.WriteString("\n")
	})
	return buf.String()
}
