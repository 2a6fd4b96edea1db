package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktrack help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasktrack                                        List tasks (default command)
  tasktrack list [--sort <key>] [--desc]           List tasks, sorted client-side
  tasktrack add [--desc <d>] [--due <date>] <title...>
  tasktrack show <id>
  tasktrack edit [--title <t>] [--desc <d>] [--due <date>|none] [--completed true|false] <id>
  tasktrack done <id>
  tasktrack undone <id>
  tasktrack rm <id>
  tasktrack login --password <password> <username>
  tasktrack signup --password <password> --confirm <password> <username>
  tasktrack logout
  tasktrack whoami
  tasktrack help
  tasktrack version

Sort keys: title, description, due_date, status. Dates use YYYY-MM-DD.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
