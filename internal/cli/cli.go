package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dpshade/fill-in-the-blank/internal/clipboard"
	"github.com/dpshade/fill-in-the-blank/internal/commands"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/game"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/renderer"
	"github.com/dpshade/fill-in-the-blank/internal/service"
	"github.com/dpshade/fill-in-the-blank/internal/suggest"
	"github.com/dpshade/fill-in-the-blank/internal/validation"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service   *service.Service
	executor  *commands.CommandExecutor
	clipboard *clipboard.Clipboard
	logger    *log.Logger
	in        io.Reader
	out       io.Writer
}

// NewCLI creates a new CLI instance reading responses from in and printing
// to out
func NewCLI(svc *service.Service, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		service:   svc,
		executor:  commands.NewCommandExecutor(svc),
		clipboard: clipboard.New(),
		in:        in,
		out:       out,
	}
}

// SetLogger sets the logger rounds are logged to
func (c *CLI) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetClipboard replaces the clipboard used by --copy
func (c *CLI) SetClipboard(cb *clipboard.Clipboard) {
	c.clipboard = cb
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "play":
		return c.playCommand(ctx, commandArgs)
	case "list", "ls":
		return c.listStories(ctx, commandArgs)
	case "search":
		return c.searchStories(ctx, commandArgs)
	case "show", "get":
		return c.showStory(ctx, commandArgs)
	case "labels":
		return c.showLabels(ctx, commandArgs)
	case "validate", "lint":
		return c.validateStories(ctx, commandArgs)
	case "fill":
		return c.fillStory(ctx, commandArgs)
	case "help":
		return c.printHelp(commandArgs)
	default:
		appErr := errors.CommandNotFoundError(command)
		if hints := suggest.Closest(command, c.commandNames(), 3); len(hints) > 0 {
			appErr.WithDetails("did you mean: " + strings.Join(hints, ", "))
		} else {
			appErr.WithDetails("use 'help' for usage information")
		}
		return appErr
	}
}

func (c *CLI) commandNames() []string {
	return append([]string{"play", "help", "ls", "lint"}, c.executor.Commands()...)
}

// Play runs one console round with the named story, or a random one when id
// is empty, and prints the wrapped story.
func (c *CLI) Play(ctx context.Context, id string, copyResult bool) error {
	story, err := c.service.PickStory(id)
	if err != nil {
		return err
	}

	controller := game.NewController(c.service.WidthFor, c.logger)
	result, err := controller.Play(ctx, story, game.NewConsolePrompter(c.in, c.out))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, result.Wrapped)

	if copyResult {
		msg, err := c.clipboard.CopyWithStatus(result.Wrapped)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg)
	}
	return nil
}

// parsedArgs splits arguments into positionals and --flag values
type parsedArgs struct {
	positional []string
	format     string
	width      int
	pretty     bool
	copy       bool
}

func parseArgs(command string, args []string) (*parsedArgs, error) {
	p := &parsedArgs{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 >= len(args) {
				return nil, errors.InvalidCommandError(command, "--format needs a value")
			}
			i++
			p.format = args[i]
		case "--width", "-w":
			if i+1 >= len(args) {
				return nil, errors.InvalidCommandError(command, "--width needs a value")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return nil, errors.InvalidCommandError(command, fmt.Sprintf("invalid width '%s'", args[i]))
			}
			if err := validation.ValidateWidth(n); err != nil {
				return nil, err
			}
			p.width = n
		case "--pretty", "-p":
			p.pretty = true
		case "--copy", "-c":
			p.copy = true
		case "--":
			p.positional = append(p.positional, args[i+1:]...)
			return p, nil
		default:
			p.positional = append(p.positional, arg)
		}
	}
	return p, nil
}

// run executes a registered command and unwraps a failed result into an error
func (c *CLI) run(ctx context.Context, name string, params map[string]interface{}) (*commands.CommandResult, error) {
	result, err := c.executor.Execute(ctx, name, params)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, result.Error.AppError()
	}
	return result, nil
}

func (c *CLI) playCommand(ctx context.Context, args []string) error {
	p, err := parseArgs("play", args)
	if err != nil {
		return err
	}
	if len(p.positional) > 1 {
		return errors.InvalidCommandError("play", "expected at most one story ID")
	}
	if p.width > 0 {
		c.service.Config().SetLineWidth(p.width)
	}

	id := ""
	if len(p.positional) == 1 {
		id = p.positional[0]
	}
	return c.Play(ctx, id, p.copy)
}

// listStories lists all stories
func (c *CLI) listStories(ctx context.Context, args []string) error {
	p, err := parseArgs("list", args)
	if err != nil {
		return err
	}

	result, err := c.run(ctx, "list", nil)
	if err != nil {
		return err
	}
	return c.formatOutput(result.Data.([]*models.Story), p.format)
}

// searchStories searches stories
func (c *CLI) searchStories(ctx context.Context, args []string) error {
	p, err := parseArgs("search", args)
	if err != nil {
		return err
	}
	if len(p.positional) == 0 {
		return errors.InvalidCommandError("search", "search query required")
	}

	query := strings.Join(p.positional, " ")
	result, err := c.run(ctx, "search", map[string]interface{}{"query": query})
	if err != nil {
		return err
	}

	stories := result.Data.([]*models.Story)
	if len(stories) == 0 && p.format != "json" {
		fmt.Fprintf(c.out, "No stories match '%s'\n", query)
		return nil
	}
	return c.formatOutput(stories, p.format)
}

// showStory shows one story with its template
func (c *CLI) showStory(ctx context.Context, args []string) error {
	p, err := parseArgs("show", args)
	if err != nil {
		return err
	}
	if len(p.positional) != 1 {
		return errors.InvalidCommandError("show", "story ID required")
	}

	result, err := c.run(ctx, "show", map[string]interface{}{"id": p.positional[0]})
	if err != nil {
		return err
	}
	story := result.Data.(*models.Story)

	switch {
	case p.format == "json":
		return c.writeJSON(story)
	case p.pretty:
		width := p.width
		if width == 0 {
			width = c.service.WidthFor(story)
		}
		out, err := renderer.NewRenderer(story, width).RenderPreview(c.service.Config().Style)
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, out)
		return nil
	default:
		return c.formatSingleStory(story)
	}
}

// showLabels prints the blanks of a story, one per line
func (c *CLI) showLabels(ctx context.Context, args []string) error {
	p, err := parseArgs("labels", args)
	if err != nil {
		return err
	}
	if len(p.positional) != 1 {
		return errors.InvalidCommandError("labels", "story ID required")
	}

	result, err := c.run(ctx, "labels", map[string]interface{}{"id": p.positional[0]})
	if err != nil {
		return err
	}
	data := result.Data.(commands.StoryLabels)

	if p.format == "json" {
		return c.writeJSON(data)
	}
	for i, label := range data.Labels {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, label)
	}
	return nil
}

// validateStories lints stories and fails if any has errors
func (c *CLI) validateStories(ctx context.Context, args []string) error {
	p, err := parseArgs("validate", args)
	if err != nil {
		return err
	}

	result, err := c.run(ctx, "validate", map[string]interface{}{"ids": p.positional})
	if err != nil {
		return err
	}
	results := result.Data.([]*validation.ValidationResult)

	if p.format == "json" {
		if err := c.writeJSON(results); err != nil {
			return err
		}
	} else {
		c.formatValidation(results)
		fmt.Fprintln(c.out, result.Message)
	}

	for _, r := range results {
		if !r.Valid {
			return r.ToAppError()
		}
	}
	return nil
}

// fillStory fills a story from responses given on the command line
func (c *CLI) fillStory(ctx context.Context, args []string) error {
	p, err := parseArgs("fill", args)
	if err != nil {
		return err
	}
	if len(p.positional) == 0 {
		return errors.InvalidCommandError("fill", "story ID required")
	}

	params := map[string]interface{}{
		"id":        p.positional[0],
		"responses": p.positional[1:],
		"width":     p.width,
	}
	result, err := c.run(ctx, "fill", params)
	if err != nil {
		return err
	}
	out := result.Data.(*renderer.Output)

	if p.format == "json" {
		if err := c.writeJSON(out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(c.out, out.Text)
	}

	if p.copy {
		msg, err := c.clipboard.CopyWithStatus(out.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg)
	}
	return nil
}

func (c *CLI) writeJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// formatOutput formats stories for output
func (c *CLI) formatOutput(stories []*models.Story, format string) error {
	switch format {
	case "json":
		return c.writeJSON(stories)
	case "ids":
		for _, s := range stories {
			fmt.Fprintln(c.out, s.ID)
		}
	case "table":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "Title", "Blanks", "Author", "Tags").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, s := range stories {
			title := s.DisplayTitle()
			if len([]rune(title)) > 30 {
				title = string([]rune(title)[:27]) + "..."
			}
			t.Row(s.ID, title, strconv.Itoa(s.Blanks), s.Author, strings.Join(s.Tags, ", "))
		}
		fmt.Fprintln(c.out, t.String())
	default:
		for _, s := range stories {
			fmt.Fprintf(c.out, "%s - %s\n", s.ID, s.DisplayTitle())
			fmt.Fprintf(c.out, "  %s\n", s.Description())
			fmt.Fprintln(c.out)
		}
	}
	return nil
}

// formatSingleStory prints a story's metadata and template
func (c *CLI) formatSingleStory(story *models.Story) error {
	fmt.Fprintf(c.out, "ID: %s\n", story.ID)
	fmt.Fprintf(c.out, "Title: %s\n", story.DisplayTitle())
	if story.Author != "" {
		fmt.Fprintf(c.out, "Author: %s\n", story.Author)
	}
	if len(story.Tags) > 0 {
		fmt.Fprintf(c.out, "Tags: %s\n", strings.Join(story.Tags, ", "))
	}
	if story.Width > 0 {
		fmt.Fprintf(c.out, "Width: %d\n", story.Width)
	}
	fmt.Fprintf(c.out, "Blanks: %d\n", story.Blanks)
	fmt.Fprintf(c.out, "File: %s\n", story.FilePath)
	fmt.Fprintf(c.out, "\nContent:\n%s\n", story.Content)
	return nil
}

func (c *CLI) formatValidation(results []*validation.ValidationResult) {
	for _, r := range results {
		status := okStyle.Render("ok")
		if !r.Valid {
			status = errorStyle.Render("FAIL")
		}
		fmt.Fprintf(c.out, "%s %s\n", status, r.StoryID)

		for _, e := range r.Errors {
			fmt.Fprintf(c.out, "  %s %s\n", errorStyle.Render("error"), entryText(e.Line, e.Column, e.Message))
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(c.out, "  %s %s\n", warnStyle.Render("warning"), entryText(w.Line, w.Column, w.Message))
		}
	}
}

func entryText(line, column int, message string) string {
	if loc := validation.Location(line, column); loc != "" {
		return loc + ": " + message
	}
	return message
}

func (c *CLI) printUsage() error {
	fmt.Fprintln(c.out, `fill-in-the-blank - Headless CLI mode

Usage: fill-in-the-blank [flags] [command] [options]

With no command a random story is played on the console.

Commands:
  play [id]                 Play a round with a story (random if omitted)
  list, ls                  List all stories
  search <query>            Search stories
  show, get <id>            Show a story and its template
  labels <id>               List the blanks a story asks for
  validate, lint [id...]    Check stories for unbalanced braces
  fill <id> <response...>   Fill a story from responses given as arguments
  help                      Show help

Use 'fill-in-the-blank help <command>' for detailed help on a specific command.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	switch command {
	case "play":
		fmt.Fprintln(c.out, `play - Play a round on the console

Usage: fill-in-the-blank play [id] [options]

Options:
  --width, -w <n>   Wrap the finished story at n columns
  --copy, -c        Copy the finished story to the clipboard`)

	case "list", "ls":
		fmt.Fprintln(c.out, `list - List all stories

Usage: fill-in-the-blank list [options]

Options:
  --format, -f <format>  Output format (table, json, ids, default)`)

	case "search":
		fmt.Fprintln(c.out, `search - Search stories

Usage: fill-in-the-blank search <query> [options]

Matches titles, IDs, authors and tags.

Options:
  --format, -f <format>  Output format (table, json, ids, default)`)

	case "show", "get":
		fmt.Fprintln(c.out, `show - Show a story

Usage: fill-in-the-blank show <id> [options]

Options:
  --pretty, -p           Render the template with blanks highlighted
  --width, -w <n>        Width for --pretty
  --format, -f json      Output as JSON`)

	case "labels":
		fmt.Fprintln(c.out, `labels - List the blanks of a story in order

Usage: fill-in-the-blank labels <id> [--format json]`)

	case "validate", "lint":
		fmt.Fprintln(c.out, `validate - Check stories for unbalanced braces

Usage: fill-in-the-blank validate [id...] [--format json]

With no IDs every story is checked. Exits non-zero if any story has errors.`)

	case "fill":
		fmt.Fprintln(c.out, `fill - Fill a story without prompting

Usage: fill-in-the-blank fill <id> <response...> [options]

One response per blank, in order. Quote responses with spaces.

Options:
  --width, -w <n>        Wrap at n columns
  --format, -f json      Output as JSON
  --copy, -c             Copy the finished story to the clipboard

Example:
  fill-in-the-blank fill roses red dogs blue`)

	default:
		return errors.CommandNotFoundError(command)
	}
	return nil
}
