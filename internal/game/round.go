// Package game runs a round: collect a response for every blank in a story,
// fill the story in, and wrap it for display.
package game

import (
	"fmt"

	"github.com/dpshade/fill-in-the-blank/internal/blanks"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/wrap"
)

// Round holds the state of one play-through of a story
type Round struct {
	Story     *models.Story
	Labels    []string
	Responses []string
}

// Result is a finished round
type Result struct {
	StoryID   string   `json:"id"`
	Title     string   `json:"title"`
	Labels    []string `json:"labels"`
	Responses []string `json:"responses"`
	Filled    string   `json:"filled"`
	Wrapped   string   `json:"text"`
	Width     int      `json:"width"`
}

// NewRound scans the story for its blanks
func NewRound(story *models.Story) *Round {
	labels := story.Labels()
	return &Round{
		Story:     story,
		Labels:    labels,
		Responses: make([]string, 0, len(labels)),
	}
}

// Current returns the label of the next blank to fill
func (r *Round) Current() (string, bool) {
	if r.Complete() {
		return "", false
	}
	return r.Labels[len(r.Responses)], true
}

// Answer records the response for the current blank
func (r *Round) Answer(response string) error {
	if r.Complete() {
		return errors.OutOfRangeError(fmt.Sprintf("all %d blanks are already filled", len(r.Labels)))
	}
	r.Responses = append(r.Responses, response)
	return nil
}

// Remaining returns how many blanks are still unanswered
func (r *Round) Remaining() int {
	return len(r.Labels) - len(r.Responses)
}

// Complete reports whether every blank has a response
func (r *Round) Complete() bool {
	return r.Remaining() == 0
}

// Finish fills the story with the responses and wraps it to width
func (r *Round) Finish(width int) (*Result, error) {
	if width <= 0 {
		return nil, errors.InvalidArgumentError(fmt.Sprintf("wrap width must be positive, got %d", width))
	}

	filled, err := blanks.Fill(r.Story.Content, r.Responses)
	if err != nil {
		return nil, err
	}

	wrapped, err := wrap.WordWrap(filled, width)
	if err != nil {
		return nil, err
	}

	return &Result{
		StoryID:   r.Story.ID,
		Title:     r.Story.DisplayTitle(),
		Labels:    r.Labels,
		Responses: r.Responses,
		Filled:    filled,
		Wrapped:   wrapped,
		Width:     width,
	}, nil
}
