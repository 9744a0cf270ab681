package service

import (
	"fmt"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/config"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/storage"
	"github.com/dpshade/fill-in-the-blank/internal/suggest"
	"github.com/sahilm/fuzzy"
)

// Service provides story library operations shared by the CLI and TUI
type Service struct {
	storage *storage.Storage
	config  *config.Config
}

// NewService creates a service over the story directory named by cfg
func NewService(cfg *config.Config, opts ...storage.Option) (*Service, error) {
	store, err := storage.NewStorage(cfg.RootDir(), cfg.StoryDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &Service{
		storage: store,
		config:  cfg,
	}, nil
}

// Config returns the active configuration
func (s *Service) Config() *config.Config {
	return s.config
}

// Storage returns the underlying story storage
func (s *Service) Storage() *storage.Storage {
	return s.storage
}

// InitLibrary creates the library directories and sample stories
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// ListStories returns metadata for every story in the library
func (s *Service) ListStories() ([]*models.Story, error) {
	return s.storage.ListStories()
}

// SearchStories fuzzy-matches query against story titles, IDs, authors and tags
func (s *Service) SearchStories(query string) ([]*models.Story, error) {
	stories, err := s.ListStories()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return stories, nil
	}

	var searchStrings []string
	for _, story := range stories {
		searchStr := fmt.Sprintf("%s %s %s %s",
			story.DisplayTitle(),
			story.ID,
			story.Author,
			strings.Join(story.Tags, " "))
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.Story
	for _, match := range matches {
		results = append(results, stories[match.Index])
	}

	return results, nil
}

// GetStory loads a story with its content. An unknown ID yields
// STORY_NOT_FOUND with close IDs listed in the details.
func (s *Service) GetStory(id string) (*models.Story, error) {
	story, err := s.storage.LoadStory(id)
	if err == nil {
		return story, nil
	}
	if !errors.HasCode(err, errors.ErrCodeStoryNotFound) {
		return nil, err
	}

	appErr := errors.GetAppError(err)
	if hints := s.Suggest(id); len(hints) > 0 {
		appErr = appErr.WithDetails("did you mean: " + strings.Join(hints, ", ")).
			WithContext("suggestions", hints)
	}
	return nil, appErr
}

// Suggest returns up to three story IDs close to id
func (s *Service) Suggest(id string) []string {
	stories, err := s.ListStories()
	if err != nil {
		return nil
	}

	var ids []string
	for _, story := range stories {
		ids = append(ids, story.ID)
	}
	return suggest.Closest(id, ids, 3)
}

// RandomStory loads a story chosen uniformly at random
func (s *Service) RandomStory() (*models.Story, error) {
	return s.storage.LoadRandomStory()
}

// PickStory loads the named story, or a random one when id is empty
func (s *Service) PickStory(id string) (*models.Story, error) {
	if id == "" {
		return s.RandomStory()
	}
	return s.GetStory(id)
}

// WidthFor returns the wrap width for a story. A width given on the command
// line or in the environment wins, then the story's own preference, then the
// config file.
func (s *Service) WidthFor(story *models.Story) int {
	if !s.config.WidthLocked() && story != nil && story.Width > 0 {
		return story.Width
	}
	return s.config.LineWidth
}
