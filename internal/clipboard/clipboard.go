// Package clipboard copies finished stories to the system clipboard by
// piping them into the platform's clipboard utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
)

// Command is one clipboard utility invocation
type Command struct {
	Name string
	Args []string
}

// Runner looks up and runs clipboard utilities
type Runner interface {
	LookPath(name string) (string, error)
	Run(name string, args []string, stdin string) error
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

// Clipboard copies text using the first working utility for its OS
type Clipboard struct {
	goos   string
	runner Runner
}

// New returns a clipboard for the current platform
func New() *Clipboard {
	return &Clipboard{goos: runtime.GOOS, runner: execRunner{}}
}

// NewWithRunner returns a clipboard for goos that runs commands through runner
func NewWithRunner(goos string, runner Runner) *Clipboard {
	return &Clipboard{goos: goos, runner: runner}
}

// Candidates lists the utilities tried for goos, in order
func Candidates(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Command{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	case "windows":
		return []Command{{Name: "clip"}}
	default:
		return nil
	}
}

// Copy copies text to the clipboard. CLIPBOARD_UNAVAILABLE is returned when no
// utility is installed, with install instructions in the details.
func (c *Clipboard) Copy(text string) error {
	var lastErr error
	tried := 0

	for _, cand := range Candidates(c.goos) {
		if _, err := c.runner.LookPath(cand.Name); err != nil {
			continue
		}
		tried++
		if err := c.runner.Run(cand.Name, cand.Args, text); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", cand.Name, err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return errors.Wrap(lastErr, errors.ErrCodeClipboardUnavailable,
			fmt.Sprintf("clipboard utilities available but failed (%d tried)", tried))
	}

	return errors.NewAppError(errors.ErrCodeClipboardUnavailable, "no clipboard utility found").
		WithDetails(InstallInstructions(c.goos)).
		WithContext("os", c.goos)
}

// Available reports whether any clipboard utility is on the PATH
func (c *Clipboard) Available() bool {
	for _, cand := range Candidates(c.goos) {
		if _, err := c.runner.LookPath(cand.Name); err == nil {
			return true
		}
	}
	return false
}

// CopyWithStatus copies text and returns a status line for the UI
func (c *Clipboard) CopyWithStatus(text string) (string, error) {
	if err := c.Copy(text); err != nil {
		return "", err
	}
	return "Copied to clipboard!", nil
}

// InstallInstructions returns how to get a clipboard utility on goos
func InstallInstructions(goos string) string {
	switch goos {
	case "linux":
		return "Install a clipboard utility:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("Clipboard not supported on %s", goos)
	}
}
