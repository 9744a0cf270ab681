package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dpshade/fill-in-the-blank/internal/clipboard"
	"github.com/dpshade/fill-in-the-blank/internal/config"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/renderer"
	"github.com/dpshade/fill-in-the-blank/internal/service"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default(root)
	if err := os.MkdirAll(cfg.StoryDir, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"roses.txt":   "Roses are {color}, {plural noun} are {color}",
		"zoo-trip.md": "---\ntitle: A Day at the Zoo\ntags: [animals]\n---\nA {animal} ate my {noun}.",
		"broken.txt":  "A {noun} with a } in it",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cfg.StoryDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	out := &bytes.Buffer{}
	return NewCLI(svc, strings.NewReader(input), out), out
}

type recordingRunner struct {
	copied string
}

func (r *recordingRunner) LookPath(name string) (string, error) { return "/bin/" + name, nil }

func (r *recordingRunner) Run(name string, args []string, stdin string) error {
	r.copied = stdin
	return nil
}

func TestPlay(t *testing.T) {
	c, out := newTestCLI(t, "red\ndogs\nblue\n")
	c.service.Config().SetLineWidth(15)

	runner := &recordingRunner{}
	c.SetClipboard(clipboard.NewWithRunner("darwin", runner))

	if err := c.ExecuteCommand(context.Background(), []string{"play", "roses", "--copy"}); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	want := "Enter a color: Enter a plural noun: Enter a color: \nRoses are red,\ndogs are blue\nCopied to clipboard!\n"
	if out.String() != want {
		t.Errorf("Unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
	if runner.copied != "Roses are red,\ndogs are blue" {
		t.Errorf("Unexpected clipboard text %q", runner.copied)
	}
}

func TestPlayInputClosed(t *testing.T) {
	c, _ := newTestCLI(t, "red\n")

	err := c.Play(context.Background(), "roses", false)
	if !errors.HasCode(err, errors.ErrCodeInputClosed) {
		t.Errorf("Expected INPUT_CLOSED, got %v", err)
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	c, _ := newTestCLI(t, "")

	err := c.ExecuteCommand(context.Background(), []string{"serch"})
	if !errors.HasCode(err, errors.ErrCodeCommandNotFound) {
		t.Fatalf("Expected COMMAND_NOT_FOUND, got %v", err)
	}
	if details := errors.GetAppError(err).Details; details != "did you mean: search" {
		t.Errorf("Unexpected details %q", details)
	}
}

func TestListFormats(t *testing.T) {
	c, out := newTestCLI(t, "")

	if err := c.ExecuteCommand(context.Background(), []string{"ls", "--format", "ids"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "broken\nroses\nzoo-trip\n" {
		t.Errorf("Unexpected ids output %q", out.String())
	}

	out.Reset()
	if err := c.ExecuteCommand(context.Background(), []string{"list", "--format", "table"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ID", "A Day at the Zoo", "animals"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in table:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := c.ExecuteCommand(context.Background(), []string{"list", "-f", "json"}); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("Expected 3 stories, got %d", len(decoded))
	}
}

func TestSearch(t *testing.T) {
	c, out := newTestCLI(t, "")

	if err := c.ExecuteCommand(context.Background(), []string{"search", "zoo", "--format", "ids"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "zoo-trip\n" {
		t.Errorf("Unexpected search output %q", out.String())
	}

	if err := c.ExecuteCommand(context.Background(), []string{"search"}); !errors.HasCode(err, errors.ErrCodeInvalidCommand) {
		t.Errorf("Expected INVALID_COMMAND without a query, got %v", err)
	}
}

func TestShowAndLabels(t *testing.T) {
	c, out := newTestCLI(t, "")

	if err := c.ExecuteCommand(context.Background(), []string{"show", "zoo-trip"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Title: A Day at the Zoo") || !strings.Contains(out.String(), "A {animal} ate my {noun}.") {
		t.Errorf("Unexpected show output %q", out.String())
	}

	out.Reset()
	if err := c.ExecuteCommand(context.Background(), []string{"labels", "roses"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1. color\n2. plural noun\n3. color\n" {
		t.Errorf("Unexpected labels output %q", out.String())
	}

	err := c.ExecuteCommand(context.Background(), []string{"labels", "rose"})
	if !errors.HasCode(err, errors.ErrCodeStoryNotFound) {
		t.Errorf("Expected STORY_NOT_FOUND, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	c, out := newTestCLI(t, "")

	if err := c.ExecuteCommand(context.Background(), []string{"validate", "roses"}); err != nil {
		t.Errorf("Expected roses to validate: %v", err)
	}

	out.Reset()
	err := c.ExecuteCommand(context.Background(), []string{"validate"})
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", err)
	}
	if !strings.Contains(out.String(), "1:17: '}' without a matching '{'") {
		t.Errorf("Expected stray brace position in output:\n%s", out.String())
	}
}

func TestFill(t *testing.T) {
	c, out := newTestCLI(t, "")

	args := []string{"fill", "roses", "red", "dogs", "blue", "--width", "15", "--format", "json"}
	if err := c.ExecuteCommand(context.Background(), args); err != nil {
		t.Fatal(err)
	}
	var decoded renderer.Output
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded.Text != "Roses are red,\ndogs are blue" || decoded.Width != 15 {
		t.Errorf("Unexpected output %+v", decoded)
	}

	err := c.ExecuteCommand(context.Background(), []string{"fill", "roses", "red", "--width", "0"})
	if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT for zero width, got %v", err)
	}

	err = c.ExecuteCommand(context.Background(), []string{"fill", "roses", "red"})
	if !errors.HasCode(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Expected OUT_OF_RANGE, got %v", err)
	}
}

func TestHelp(t *testing.T) {
	c, out := newTestCLI(t, "")

	if err := c.ExecuteCommand(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Usage: fill-in-the-blank") {
		t.Errorf("Expected usage, got %q", out.String())
	}

	if err := c.ExecuteCommand(context.Background(), []string{"help", "nope"}); !errors.HasCode(err, errors.ErrCodeCommandNotFound) {
		t.Errorf("Expected COMMAND_NOT_FOUND for unknown help topic, got %v", err)
	}
}
