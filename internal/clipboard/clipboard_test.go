package clipboard

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
)

type fakeRunner struct {
	installed map[string]bool
	failing   map[string]bool
	ran       []string
	stdin     string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: not found", name)
}

func (f *fakeRunner) Run(name string, args []string, stdin string) error {
	f.ran = append(f.ran, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if f.failing[name] {
		return fmt.Errorf("exit status 1")
	}
	f.stdin = stdin
	return nil
}

func TestCopyUsesFirstInstalledUtility(t *testing.T) {
	runner := &fakeRunner{installed: map[string]bool{"xclip": true, "xsel": true}}
	c := NewWithRunner("linux", runner)

	if err := c.Copy("Roses are red"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if !reflect.DeepEqual(runner.ran, []string{"xclip -selection clipboard"}) {
		t.Errorf("Unexpected commands %v", runner.ran)
	}
	if runner.stdin != "Roses are red" {
		t.Errorf("Expected text on stdin, got %q", runner.stdin)
	}
}

func TestCopyFallsBackOnFailure(t *testing.T) {
	runner := &fakeRunner{
		installed: map[string]bool{"wl-copy": true, "xsel": true},
		failing:   map[string]bool{"wl-copy": true},
	}
	c := NewWithRunner("linux", runner)

	if err := c.Copy("text"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if !reflect.DeepEqual(runner.ran, []string{"wl-copy", "xsel --clipboard --input"}) {
		t.Errorf("Unexpected commands %v", runner.ran)
	}
}

func TestCopyUnavailable(t *testing.T) {
	c := NewWithRunner("linux", &fakeRunner{})

	err := c.Copy("text")
	if !errors.HasCode(err, errors.ErrCodeClipboardUnavailable) {
		t.Fatalf("Expected CLIPBOARD_UNAVAILABLE, got %v", err)
	}
	if !strings.Contains(errors.GetAppError(err).Details, "xclip") {
		t.Errorf("Expected install hint in details, got %q", errors.GetAppError(err).Details)
	}
	if c.Available() {
		t.Error("Expected clipboard to be unavailable")
	}
}

func TestCopyAllFail(t *testing.T) {
	runner := &fakeRunner{
		installed: map[string]bool{"pbcopy": true},
		failing:   map[string]bool{"pbcopy": true},
	}
	err := NewWithRunner("darwin", runner).Copy("text")
	if !errors.HasCode(err, errors.ErrCodeClipboardUnavailable) {
		t.Errorf("Expected CLIPBOARD_UNAVAILABLE, got %v", err)
	}
}

func TestCopyWithStatus(t *testing.T) {
	runner := &fakeRunner{installed: map[string]bool{"clip": true}}
	msg, err := NewWithRunner("windows", runner).CopyWithStatus("text")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Copied to clipboard!" {
		t.Errorf("Unexpected status %q", msg)
	}
}

func TestInstallInstructions(t *testing.T) {
	tests := map[string]string{
		"linux":   "xclip",
		"darwin":  "pbcopy",
		"windows": "clip",
		"plan9":   "plan9",
	}
	for goos, want := range tests {
		if got := InstallInstructions(goos); !strings.Contains(got, want) {
			t.Errorf("%s: expected %q in %q", goos, want, got)
		}
	}
}
