package version

import (
	"github.com/micro-tools/notebridge/internal/cmd/base"
	"github.com/micro-tools/notebridge/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: notebridge version

  Prints the version of this notebridge build.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
