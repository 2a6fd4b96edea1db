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
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	password string
	confirm  string
}

// SetPasswords sets password and confirmation (for testing).
func (c *SignupCmd) SetPasswords(password, confirm string) {
	c.password = password
	c.confirm = confirm
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Register a new account" }
func (c *SignupCmd) Usage() string {
	return "tasktrack signup --password <password> --confirm <password> <username>"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	if c.password == "" {
		fmt.Fprintln(errOut, "error: password required (--password)")
		return exitcode.UserError
	}

	// Confirmation is checked before any network call.
	if c.password != c.confirm {
		return fail(errOut, service.ValidationErrorf("passwords do not match"))
	}

	if err := svc.Signup(ctx, args[0], c.password); err != nil {
		return fail(errOut, err)
	}

	// No token is issued on signup; the user logs in separately.
	if !cfg.Quiet {
		fmt.Fprintln(out, "account created (run: tasktrack login)")
	}
	return exitcode.Success
}
