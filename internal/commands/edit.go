package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: fetch the current record, apply the
// provided flags, then fully replace it with a single update call.
type EditCmd struct {
	title       optString
	description optString
	due         optString
	completed   optString
}

// SetTitle marks the title flag as set (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetDue marks the due flag as set (for testing).
func (c *EditCmd) SetDue(due string) {
	_ = c.due.Set(due)
}

// SetCompleted marks the completed flag as set (for testing).
func (c *EditCmd) SetCompleted(v string) {
	_ = c.completed.Set(v)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task (full replace)" }
func (c *EditCmd) Usage() string {
	return "tasktrack edit [--title <t>] [--desc <d>] [--due YYYY-MM-DD|none] [--completed true|false] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.completed, "completed", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.title.set && !c.description.set && !c.due.set && !c.completed.set {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	current, err := svc.GetTask(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}

	draft := service.TaskDraft{
		Title:       current.Title,
		Description: current.Description,
		DueDate:     current.DueDate,
		Completed:   current.Completed,
	}
	if c.title.set {
		draft.Title = c.title.value
	}
	if c.description.set {
		draft.Description = c.description.value
	}
	if c.due.set {
		if c.due.value == "none" {
			draft.DueDate = nil
		} else {
			due, err := time.Parse(service.DateLayout, c.due.value)
			if err != nil {
				fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due.value)
				return exitcode.UserError
			}
			draft.DueDate = &due
		}
	}
	if c.completed.set {
		done, err := strconv.ParseBool(c.completed.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid value for --completed: %s\n", c.completed.value)
			return exitcode.UserError
		}
		draft.Completed = done
	}

	if _, err := svc.UpdateTask(ctx, id, draft); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
