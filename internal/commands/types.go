// Package commands implements the headless story commands shared by the CLI.
//
// Each command is created from a factory in the registry, given its parameters
// as a map, validated and executed against the service layer. Failures come
// back inside the CommandResult rather than as a Go error so callers can print
// them in whatever format they are rendering.
//
// Commands:
// - list: every story's metadata
// - search: fuzzy search over titles, IDs, authors and tags
// - show: one story with its template
// - labels: the blank labels of a story in order
// - validate: lint one, several or all stories
// - fill: fill a story from responses given up front
package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/service"
	"github.com/dpshade/fill-in-the-blank/internal/suggest"
)

// CommandResult represents the result of executing a command
type CommandResult struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Success bool        `json:"success"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo provides structured error information
type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// AppError turns the error info back into an AppError
func (e *ErrorInfo) AppError() *errors.AppError {
	appErr := errors.NewAppError(errors.ErrorCode(e.Code), e.Message)
	if e.Details != "" {
		appErr.WithDetails(e.Details)
	}
	return appErr
}

// Command represents a unified command interface
type Command interface {
	Execute(ctx context.Context) (*CommandResult, error)
	Validate() error
	GetName() string
	GetDescription() string
}

// ParameterizedCommand interface for commands that accept parameters
type ParameterizedCommand interface {
	SetParameters(params map[string]interface{}) error
}

// CommandRegistry manages available commands
type CommandRegistry struct {
	commands map[string]func() Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]func() Command),
	}
}

// Register adds a command factory to the registry
func (r *CommandRegistry) Register(name string, factory func() Command) {
	r.commands[name] = factory
}

// Get retrieves a command factory by name
func (r *CommandRegistry) Get(name string) (func() Command, bool) {
	factory, exists := r.commands[name]
	return factory, exists
}

// List returns all available command names, sorted
func (r *CommandRegistry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandExecutor provides a unified way to execute commands
type CommandExecutor struct {
	service  *service.Service
	registry *CommandRegistry
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(svc *service.Service) *CommandExecutor {
	executor := &CommandExecutor{
		service:  svc,
		registry: NewCommandRegistry(),
	}

	executor.registerCommands()

	return executor
}

// Commands lists the registered command names
func (e *CommandExecutor) Commands() []string {
	return e.registry.List()
}

// Describe returns the description of a registered command
func (e *CommandExecutor) Describe(name string) string {
	factory, ok := e.registry.Get(name)
	if !ok {
		return ""
	}
	return factory().GetDescription()
}

// Execute runs a command by name with the given parameters
func (e *CommandExecutor) Execute(ctx context.Context, commandName string, params map[string]interface{}) (*CommandResult, error) {
	factory, exists := e.registry.Get(commandName)
	if !exists {
		appErr := errors.CommandNotFoundError(commandName)
		if hints := suggest.Closest(commandName, e.registry.List(), 3); len(hints) > 0 {
			appErr.WithDetails("did you mean: " + strings.Join(hints, ", "))
		}
		return errorResult(appErr), nil
	}

	if params == nil {
		params = make(map[string]interface{})
	}

	cmd := factory()

	if parameterized, ok := cmd.(ParameterizedCommand); ok {
		if err := parameterized.SetParameters(params); err != nil {
			return errorResult(errors.GetAppError(err)), nil
		}
	}

	if err := cmd.Validate(); err != nil {
		return errorResult(errors.GetAppError(err)), nil
	}

	result, err := cmd.Execute(ctx)
	if err != nil {
		return errorResult(errors.GetAppError(err)), nil
	}

	return result, nil
}

func errorResult(appErr *errors.AppError) *CommandResult {
	return &CommandResult{
		Success: false,
		Error: &ErrorInfo{
			Code:     string(appErr.Code),
			Message:  appErr.Message,
			Details:  appErr.Details,
			Category: string(appErr.Category),
			Severity: string(appErr.Severity),
		},
	}
}

// registerCommands registers all available commands
func (e *CommandExecutor) registerCommands() {
	e.registry.Register("list", func() Command {
		return &ListStoriesCommand{service: e.service}
	})
	e.registry.Register("search", func() Command {
		return &SearchStoriesCommand{service: e.service}
	})
	e.registry.Register("show", func() Command {
		return &ShowStoryCommand{service: e.service}
	})
	e.registry.Register("labels", func() Command {
		return &LabelsCommand{service: e.service}
	})
	e.registry.Register("validate", func() Command {
		return &ValidateStoriesCommand{service: e.service}
	})
	e.registry.Register("fill", func() Command {
		return &FillStoryCommand{service: e.service}
	})
}

// stringParam reads a string parameter
func stringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidArgumentError(key + " must be a string")
	}
	return s, nil
}

// stringsParam reads a []string parameter
func stringsParam(params map[string]interface{}, key string) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.([]string)
	if !ok {
		return nil, errors.InvalidArgumentError(key + " must be a list of strings")
	}
	return s, nil
}

// intParam reads an int parameter
func intParam(params map[string]interface{}, key string) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, errors.InvalidArgumentError(key + " must be an integer")
	}
	return n, nil
}
