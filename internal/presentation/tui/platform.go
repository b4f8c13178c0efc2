package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var errNoURL = errors.New("highlight has no source URL")

// OSOpenCmd builds the platform command that opens a URL.
// Tests replace it to avoid launching a browser.
var OSOpenCmd = func(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target) //nolint:gosec
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target) //nolint:gosec
	case "darwin":
		return exec.Command("open", target) //nolint:gosec
	default:
		return nil
	}
}

func openBrowser(target string) error {
	if target == "" {
		return errNoURL
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("invalid URL %q", target)
	}
	cmd := OSOpenCmd(target)
	if cmd == nil {
		return fmt.Errorf("opening URLs is not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}
