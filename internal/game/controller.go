package game

import (
	"context"
	"io"
	"log"

	"github.com/dpshade/fill-in-the-blank/internal/models"
)

// Controller plays rounds: scan, prompt, fill, wrap
type Controller struct {
	width  func(*models.Story) int
	logger *log.Logger
}

// NewController creates a controller. width picks the wrap width for a
// story; logger may be nil to discard round logging.
func NewController(width func(*models.Story) int, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		width:  width,
		logger: logger,
	}
}

// Play asks prompter for every blank in story and returns the finished round.
// Any failure ends the round without a story.
func (c *Controller) Play(ctx context.Context, story *models.Story, prompter Prompter) (*Result, error) {
	round := NewRound(story)
	c.logger.Printf("round start: story=%s blanks=%d", story.ID, len(round.Labels))

	for !round.Complete() {
		label, _ := round.Current()
		response, err := prompter.Ask(ctx, label)
		if err != nil {
			c.logger.Printf("round aborted: story=%s answered=%d: %v", story.ID, len(round.Responses), err)
			return nil, err
		}
		if err := round.Answer(response); err != nil {
			return nil, err
		}
	}

	result, err := round.Finish(c.width(story))
	if err != nil {
		c.logger.Printf("round failed: story=%s: %v", story.ID, err)
		return nil, err
	}

	c.logger.Printf("round finished: story=%s width=%d", story.ID, result.Width)
	return result, nil
}
