// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session
	// token. The dispatcher refuses to run such commands while logged
	// out, before any network call is attempted.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, base URL, flags).
	// svc is the API service; nil only for commands that never touch it
	// (help, version, logout).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// fail prints a normalized error and maps its kind to an exit code.
// Validation and not-found failures are user errors; auth failures and
// network failures get their own codes.
func fail(errOut io.Writer, err error) int {
	var se *service.Error
	if errors.As(err, &se) {
		fmt.Fprintf(errOut, "error: %s\n", se.Message)
		switch se.Kind {
		case service.KindAuth:
			return exitcode.AuthError
		case service.KindFetch:
			return exitcode.BackendError
		default:
			return exitcode.UserError
		}
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

// parseTaskID parses the single positional task id argument.
func parseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("task id required")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// optString is a flag.Value that remembers whether it was set, so edit can
// tell "flag omitted" apart from "flag set to empty".
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}
