package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Every run refetches the full task
// list from the server; nothing is cached between runs.
type ListCmd struct {
	sortKey string
	desc    bool

	// now is overridable for testing status derivation.
	now func() time.Time
}

// SetSort sets the sort key and direction (for testing).
func (c *ListCmd) SetSort(key string, desc bool) {
	c.sortKey = key
	c.desc = desc
}

// SetNow overrides the clock (for testing).
func (c *ListCmd) SetNow(now func() time.Time) {
	c.now = now
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "tasktrack list [--sort title|description|due_date|status] [--desc]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.sortKey, "sort", string(service.SortByDueDate), "")
	fs.BoolVar(&c.desc, "desc", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	key, err := service.ParseSortKey(c.sortKey)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Consume the one-shot notice queued by login.
	if msg, ok := session.NewStore(cfg).TakeNotice(); ok && !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	service.SortTasks(tasks, key, c.desc, now())

	output.FormatHeader(out)
	for _, t := range tasks {
		output.FormatTaskRow(out, t, now())
	}
	return exitcode.Success
}
