package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dpshade/fill-in-the-blank/internal/cli"
	"github.com/dpshade/fill-in-the-blank/internal/config"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/service"
	"github.com/dpshade/fill-in-the-blank/internal/storage"
	"github.com/dpshade/fill-in-the-blank/internal/ui"
	"github.com/dpshade/fill-in-the-blank/internal/validation"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`fill-in-the-blank - A word game for the terminal

Pick a story, answer a prompt for every blank without seeing the story, then
read what you wrote.

USAGE:
    fill-in-the-blank [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Create the story library with sample stories
    --tui           Start the interactive TUI
    --story <id>    Play this story instead of a random one
    --width <n>     Wrap the finished story at n columns (default: 70)
    --seed <n>      Seed for random story selection
    --copy          Copy the finished story to the clipboard
    --verbose       Log round and error details to stderr

COMMANDS:
    (no command)              Play a round on the console
    play [id]                 Play a round with a story
    list, ls                  List all stories
    search <query>            Search stories
    show, get <id>            Show a story and its template
    labels <id>               List the blanks a story asks for
    validate, lint [id...]    Check stories for unbalanced braces
    fill <id> <response...>   Fill a story from responses given as arguments
    help                      Show CLI command help

EXAMPLES:
    fill-in-the-blank --init                      # Create library with samples
    fill-in-the-blank                             # Play a random story
    fill-in-the-blank --story roses --width 40    # Play a chosen story
    fill-in-the-blank --tui                       # Pick stories in the TUI
    fill-in-the-blank list --format table         # List stories in a table
    fill-in-the-blank validate                    # Lint every story
    fill-in-the-blank help <command>              # Get detailed help

STORAGE:
    Default directory: ~/.fill-in-the-blank
    Override with: %s=<path>
    Stories are plain text or markdown files with {label} blanks.
`, config.EnvDir)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var tui bool
	var storyID string
	var width int
	var seed uint64
	var copyResult bool
	var verbose bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Create the story library with sample stories")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&tui, "tui", false, "Start the interactive TUI")
	flag.StringVar(&storyID, "story", "", "Play this story instead of a random one")
	flag.IntVar(&width, "width", 0, "Wrap the finished story at this many columns")
	flag.Uint64Var(&seed, "seed", 0, "Seed for random story selection")
	flag.BoolVar(&copyResult, "copy", false, "Copy the finished story to the clipboard")
	flag.BoolVar(&verbose, "verbose", false, "Log round and error details to stderr")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("fill-in-the-blank version %s\n", version)
		os.Exit(0)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	rootDir, err := config.RootDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Verbose = true
	}

	handler := errors.NewCLIErrorHandler(cfg.Verbose, cfg.LogDir())
	fail := func(err error) {
		fmt.Fprintln(os.Stderr, handler.HandleError(err))
		if errors.HasCode(err, errors.ErrCodeSourceUnavailable) {
			fmt.Fprintln(os.Stderr, "Run 'fill-in-the-blank --init' to create a library with sample stories.")
		}
		os.Exit(1)
	}

	if set["width"] {
		if err := validation.ValidateWidth(width); err != nil {
			fail(err)
		}
		cfg.SetLineWidth(width)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	var opts []storage.Option
	if set["seed"] {
		opts = append(opts, storage.WithSeed(seed))
	}

	svc, err := service.NewService(cfg, opts...)
	if err != nil {
		fail(err)
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fail(err)
		}
		fmt.Printf("Initialized story library in %s\n", svc.Storage().StoryDir())
		return
	}

	if tui {
		if err := runTUI(svc, cfg); err != nil {
			fail(err)
		}
		return
	}

	cliHandler := cli.NewCLI(svc, os.Stdin, os.Stdout)
	if cfg.Verbose {
		cliHandler.SetLogger(log.New(os.Stderr, "", log.LstdFlags))
	}

	ctx := context.Background()

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		if err := cliHandler.ExecuteCommand(ctx, args); err != nil {
			fail(err)
		}
		return
	}

	// No arguments provided - play one round on the console
	if err := cliHandler.Play(ctx, storyID, copyResult); err != nil {
		fail(err)
	}
}

// runTUI starts the bubbletea program. Logging goes to a file when DEBUG is
// set and is discarded otherwise so it cannot corrupt the screen.
func runTUI(svc *service.Service, cfg *config.Config) error {
	if os.Getenv("DEBUG") != "" {
		if err := os.MkdirAll(cfg.LogDir(), 0755); err != nil {
			return errors.StorageError("create log directory", err)
		}
		f, err := tea.LogToFile(filepath.Join(cfg.LogDir(), "tui.log"), "debug")
		if err != nil {
			return fmt.Errorf("failed to open TUI log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	model, err := ui.NewModel(svc)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
