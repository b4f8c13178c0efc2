package integrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/tesso57/glean/internal/domain/highlight"
)

const defaultTimeout = 10 * time.Second

// ClipboardWriter writes text to the system clipboard.
type ClipboardWriter func(text string) error

// Runner executes a command with stdin and returns stdout/stderr text.
type Runner func(ctx context.Context, command string, args []string, stdin string) (string, string, error)

// Config selects the sinks integrated highlights are written to.
type Config struct {
	Clipboard bool
	Command   string
	Args      []string
	Timeout   time.Duration
}

// Integrator writes formatted highlights to every configured sink.
type Integrator struct {
	config    Config
	clipboard ClipboardWriter
	run       Runner
}

// New creates an Integrator using the system clipboard and os/exec.
func New(cfg Config) Integrator {
	return NewWithSinks(cfg, nil, nil)
}

// NewWithSinks creates an Integrator with custom side effects for tests.
// nil arguments fall back to the real clipboard and os/exec.
func NewWithSinks(cfg Config, write ClipboardWriter, runner Runner) Integrator {
	if write == nil {
		write = clipboard.WriteAll
	}
	if runner == nil {
		runner = defaultRunner
	}
	cfg.Command = strings.TrimSpace(cfg.Command)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return Integrator{config: cfg, clipboard: write, run: runner}
}

// Enabled reports whether at least one sink is configured.
func (i Integrator) Enabled() bool {
	return i.config.Clipboard || i.config.Command != ""
}

// Integrate formats items and writes them to the clipboard and the
// configured command. Both sinks are attempted; their errors are joined.
func (i Integrator) Integrate(ctx context.Context, items []highlight.Item) error {
	if len(items) == 0 || !i.Enabled() {
		return nil
	}
	text := Format(items)

	var errs []error
	if i.config.Clipboard {
		if err := i.clipboard(text); err != nil {
			errs = append(errs, fmt.Errorf("clipboard: %w", err))
		}
	}
	if i.config.Command != "" {
		if err := i.runCommand(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (i Integrator) runCommand(ctx context.Context, text string) error {
	runCtx, cancel := context.WithTimeout(ctx, i.config.Timeout)
	defer cancel()

	stdout, stderr, err := i.run(runCtx, i.config.Command, i.config.Args, text)
	if err == nil {
		return nil
	}
	reason := strings.TrimSpace(stderr)
	if reason == "" {
		reason = strings.TrimSpace(stdout)
	}
	if reason == "" {
		return fmt.Errorf("%s failed: %w", i.config.Command, err)
	}
	return fmt.Errorf("%s failed: %w: %s", i.config.Command, err, reason)
}

func defaultRunner(ctx context.Context, command string, args []string, stdin string) (string, string, error) {
	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
