package commands

import (
	"context"
	"fmt"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/renderer"
	"github.com/dpshade/fill-in-the-blank/internal/service"
	"github.com/dpshade/fill-in-the-blank/internal/validation"
)

// ListStoriesCommand lists every story in the library
type ListStoriesCommand struct {
	service *service.Service
}

func (c *ListStoriesCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	return nil
}

func (c *ListStoriesCommand) GetName() string { return "list" }
func (c *ListStoriesCommand) GetDescription() string { return "List all stories" }

func (c *ListStoriesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	stories, err := c.service.ListStories()
	if err != nil {
		return nil, err
	}
	return &CommandResult{
		Data:    stories,
		Message: fmt.Sprintf("Found %d stories", len(stories)),
		Success: true,
	}, nil
}

// SearchStoriesCommand fuzzy-searches the library
type SearchStoriesCommand struct {
	service *service.Service
	Query   string
}

func (c *SearchStoriesCommand) SetParameters(params map[string]interface{}) error {
	query, err := stringParam(params, "query")
	if err != nil {
		return err
	}
	c.Query = query
	return nil
}

func (c *SearchStoriesCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	if c.Query == "" {
		return errors.InvalidArgumentError("search query is required")
	}
	return nil
}

func (c *SearchStoriesCommand) GetName() string { return "search" }
func (c *SearchStoriesCommand) GetDescription() string { return "Search stories by title, ID, author or tag" }

func (c *SearchStoriesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	stories, err := c.service.SearchStories(c.Query)
	if err != nil {
		return nil, err
	}
	return &CommandResult{
		Data:    stories,
		Message: fmt.Sprintf("Found %d stories matching '%s'", len(stories), c.Query),
		Success: true,
	}, nil
}

// ShowStoryCommand loads one story with its template
type ShowStoryCommand struct {
	service *service.Service
	ID      string
}

func (c *ShowStoryCommand) SetParameters(params map[string]interface{}) error {
	id, err := stringParam(params, "id")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (c *ShowStoryCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	if c.ID == "" {
		return errors.InvalidArgumentError("story ID is required")
	}
	return nil
}

func (c *ShowStoryCommand) GetName() string { return "show" }
func (c *ShowStoryCommand) GetDescription() string { return "Show a story and its template" }

func (c *ShowStoryCommand) Execute(ctx context.Context) (*CommandResult, error) {
	story, err := c.service.GetStory(c.ID)
	if err != nil {
		return nil, err
	}
	return &CommandResult{Data: story, Success: true}, nil
}

// LabelsCommand lists the blanks of a story
type LabelsCommand struct {
	service *service.Service
	ID      string
}

// StoryLabels is the data returned by the labels command
type StoryLabels struct {
	ID     string   `json:"id"`
	Labels []string `json:"labels"`
}

func (c *LabelsCommand) SetParameters(params map[string]interface{}) error {
	id, err := stringParam(params, "id")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (c *LabelsCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	if c.ID == "" {
		return errors.InvalidArgumentError("story ID is required")
	}
	return nil
}

func (c *LabelsCommand) GetName() string { return "labels" }
func (c *LabelsCommand) GetDescription() string { return "List the blanks a story asks for" }

func (c *LabelsCommand) Execute(ctx context.Context) (*CommandResult, error) {
	story, err := c.service.GetStory(c.ID)
	if err != nil {
		return nil, err
	}
	return &CommandResult{
		Data:    StoryLabels{ID: story.ID, Labels: story.Labels()},
		Success: true,
	}, nil
}

// ValidateStoriesCommand lints stories. With no IDs every story is checked.
type ValidateStoriesCommand struct {
	service *service.Service
	IDs     []string
}

func (c *ValidateStoriesCommand) SetParameters(params map[string]interface{}) error {
	ids, err := stringsParam(params, "ids")
	if err != nil {
		return err
	}
	c.IDs = ids
	return nil
}

func (c *ValidateStoriesCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	return nil
}

func (c *ValidateStoriesCommand) GetName() string { return "validate" }
func (c *ValidateStoriesCommand) GetDescription() string { return "Check stories for unbalanced braces" }

func (c *ValidateStoriesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	ids := c.IDs
	if len(ids) == 0 {
		stories, err := c.service.ListStories()
		if err != nil {
			return nil, err
		}
		for _, story := range stories {
			ids = append(ids, story.ID)
		}
	}

	var results []*validation.ValidationResult
	invalid := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCancelled, "validation cancelled")
		}
		story, err := c.service.GetStory(id)
		if err != nil {
			return nil, err
		}
		result := validation.ValidateStory(story)
		if !result.Valid {
			invalid++
		}
		results = append(results, result)
	}

	return &CommandResult{
		Data:    results,
		Message: fmt.Sprintf("%d of %d stories have problems", invalid, len(results)),
		Success: true,
	}, nil
}

// FillStoryCommand fills a story from responses given up front
type FillStoryCommand struct {
	service   *service.Service
	ID        string
	Responses []string
	Width     int
}

func (c *FillStoryCommand) SetParameters(params map[string]interface{}) error {
	var err error
	if c.ID, err = stringParam(params, "id"); err != nil {
		return err
	}
	if c.Responses, err = stringsParam(params, "responses"); err != nil {
		return err
	}
	if c.Width, err = intParam(params, "width"); err != nil {
		return err
	}
	return nil
}

func (c *FillStoryCommand) Validate() error {
	if c.service == nil {
		return errors.InternalError("service not set")
	}
	if c.Width < 0 {
		return validation.ValidateWidth(c.Width)
	}
	return nil
}

func (c *FillStoryCommand) GetName() string { return "fill" }
func (c *FillStoryCommand) GetDescription() string { return "Fill a story from responses given as arguments" }

func (c *FillStoryCommand) Execute(ctx context.Context) (*CommandResult, error) {
	story, err := c.service.PickStory(c.ID)
	if err != nil {
		return nil, err
	}

	width := c.Width
	if width == 0 {
		width = c.service.WidthFor(story)
	}

	out, err := renderer.NewRenderer(story, width).Output(c.Responses)
	if err != nil {
		return nil, err
	}
	return &CommandResult{Data: out, Success: true}, nil
}

