package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App runs notepadctl commands against the settings and rewrite services.
type App struct {
	settings service.SettingsService
	rewrite  service.RewriteService
	in       *bufio.Reader
	out      io.Writer
	fd       int
}

// NewApp creates an App reading from stdin and writing to stdout.
func NewApp(settings service.SettingsService, rewrite service.RewriteService) *App {
	return &App{
		settings: settings,
		rewrite:  rewrite,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		fd:       int(os.Stdin.Fd()),
	}
}

// WithIO replaces stdin and stdout. fd is the descriptor checked for a
// terminal before prompting without echo.
func (a *App) WithIO(in io.Reader, out io.Writer, fd int) *App {
	a.in = bufio.NewReader(in)
	a.out = out
	a.fd = fd
	return a
}

// Run executes the command named by args[0] and returns the process exit
// code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "set-key":
		err = a.setKey(ctx, args[1:])
	case "delete-key":
		err = a.deleteKey(ctx)
	case "key-status":
		err = a.keyStatus(ctx)
	case "test-connection":
		var ok bool
		ok, err = a.testConnection(ctx, args[1:])
		if err == nil && !ok {
			return ExitFailure
		}
	case "help", "-h", "--help":
		a.usage()
		return ExitOK
	default:
		fmt.Fprintf(a.out, "unknown command %q\n", args[0])
		a.usage()
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitUsage
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: notepadctl <command> [flags]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "commands:")
	fmt.Fprintln(a.out, "  set-key          store the API key (keyring, or encrypted file)")
	fmt.Fprintln(a.out, "  delete-key       remove the stored API key")
	fmt.Fprintln(a.out, "  key-status       show where the API key is stored")
	fmt.Fprintln(a.out, "  test-connection  send one probe request to the deployment")
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// setKey prompts for the key. A passphrase is only asked for when the
// keyring cannot hold the key and none is configured.
func (a *App) setKey(ctx context.Context, args []string) error {
	fs := a.flagSet("set-key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := a.readSecret("API key: ")
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	method, err := a.settings.SetAPIKey(ctx, key, "")
	var verr *service.ValidationError
	if errors.As(err, &verr) && verr.Field == "passphrase" {
		fmt.Fprintln(a.out, "The OS keyring is unavailable; the key will be stored in an encrypted file.")
		passphrase, perr := a.newPassphrase()
		if perr != nil {
			return perr
		}
		method, err = a.settings.SetAPIKey(ctx, key, passphrase)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "API key stored (%s)\n", method)
	return nil
}

func (a *App) newPassphrase() (string, error) {
	first, err := a.readSecret("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if first == "" {
		return "", errors.New("passphrase cannot be empty")
	}
	second, err := a.readSecret("Repeat passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}

func (a *App) deleteKey(ctx context.Context) error {
	if a.settings.DeleteAPIKey(ctx) {
		fmt.Fprintln(a.out, "API key removed")
	} else {
		fmt.Fprintln(a.out, "no stored API key")
	}
	return nil
}

func (a *App) keyStatus(ctx context.Context) error {
	view, err := a.settings.Connection(ctx)
	if err != nil {
		return err
	}

	switch {
	case view.KeyStorage != "":
		fmt.Fprintf(a.out, "API key: stored (%s)\n", view.KeyStorage)
	case view.Effective.APIKeySet:
		fmt.Fprintln(a.out, "API key: from environment")
	default:
		fmt.Fprintln(a.out, "API key: not set")
	}

	eff := view.Effective
	fmt.Fprintf(a.out, "endpoint: %s\n", valueOrDash(eff.Endpoint))
	fmt.Fprintf(a.out, "deployment: %s\n", valueOrDash(eff.Deployment))
	fmt.Fprintf(a.out, "configured: %t\n", eff.Configured)
	return nil
}

func (a *App) testConnection(ctx context.Context, args []string) (bool, error) {
	fs := a.flagSet("test-connection")
	deployment := fs.String("deployment", "", "deployment to probe instead of the configured one")
	timeout := fs.Duration("timeout", 0, "request timeout (default: configured timeout)")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if *timeout < 0 {
		return false, errors.New("timeout must not be negative")
	}

	start := time.Now()
	result := a.rewrite.TestConnection(ctx, *deployment, *timeout)
	printResult(a.out, result, time.Since(start))
	return result.OK, nil
}

func printResult(w io.Writer, r llm.ConnectionResult, took time.Duration) {
	fmt.Fprintf(w, "status: %s\n", r.Status)
	if r.Details != "" {
		fmt.Fprintf(w, "details: %s\n", r.Details)
	}
	fmt.Fprintf(w, "took: %s\n", took.Round(time.Millisecond))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
