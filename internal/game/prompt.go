package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
)

// Prompter asks the player for the word or phrase for one blank
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
}

// ConsolePrompter prompts on a writer and reads one line per blank
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter creates a prompter reading from in and writing to out
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes "Enter a <label>: " and returns the next line without its line
// ending. Input that ends before any text is read is INPUT_CLOSED; a final
// line without a newline is accepted.
func (p *ConsolePrompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCancelled, "Round cancelled")
	}

	fmt.Fprint(p.out, PromptText(label))

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errors.Wrap(err, errors.ErrCodeInputClosed, "Input closed before every blank was filled").
				WithContext("label", label)
		}
		return "", errors.Wrap(err, errors.ErrCodeInputClosed, "Failed to read response")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// PromptText returns the prompt shown for a label
func PromptText(label string) string {
	return fmt.Sprintf("Enter %s %s: ", Article(label), label)
}

// Article returns "an" for labels starting with a vowel letter and "a"
// otherwise.
func Article(label string) string {
	for _, r := range label {
		if unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune("aeiouAEIOU", r) {
			return "an"
		}
		break
	}
	return "a"
}

// ScriptedPrompter answers from a fixed list, for tests and replays
type ScriptedPrompter struct {
	Responses []string
	Asked     []string
}

// Ask returns the next scripted response
func (p *ScriptedPrompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCancelled, "Round cancelled")
	}
	if len(p.Asked) >= len(p.Responses) {
		return "", errors.NewAppError(errors.ErrCodeInputClosed, "No scripted response left").
			WithContext("label", label)
	}
	p.Asked = append(p.Asked, label)
	return p.Responses[len(p.Asked)-1], nil
}
