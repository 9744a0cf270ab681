package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpshade/fill-in-the-blank/internal/config"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/storage"
)

func newTestService(t *testing.T, opts ...storage.Option) *Service {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default(root)
	if err := os.MkdirAll(cfg.StoryDir, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"roses.txt":    "Roses are {color}, {plural noun} are {color}",
		"zoo-trip.md":  "---\ntitle: A Day at the Zoo\ntags: [animals]\nwidth: 40\n---\nA {animal} ate my {noun}.",
		"interview.md": "---\ntitle: The Job Interview\nauthor: Jacob\n---\nHello {name}.",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cfg.StoryDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	svc, err := NewService(cfg, opts...)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc
}

func TestSearchStories(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.SearchStories("anim")
	if err != nil {
		t.Fatalf("SearchStories failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "zoo-trip" {
		t.Errorf("Expected only zoo-trip to match tag search, got %d results", len(results))
	}

	results, err = svc.SearchStories("jacob")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "interview" {
		t.Errorf("Expected author search to find interview, got %d results", len(results))
	}

	all, err := svc.SearchStories("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("Expected empty query to return all 3 stories, got %d", len(all))
	}
}

func TestGetStorySuggestions(t *testing.T) {
	svc := newTestService(t)

	story, err := svc.GetStory("roses")
	if err != nil {
		t.Fatalf("GetStory failed: %v", err)
	}
	if story.Content == "" {
		t.Error("Expected GetStory to load content")
	}

	_, err = svc.GetStory("rosse")
	if !errors.HasCode(err, errors.ErrCodeStoryNotFound) {
		t.Fatalf("Expected STORY_NOT_FOUND, got %v", err)
	}
	appErr := errors.GetAppError(err)
	if appErr.Details != "did you mean: roses" {
		t.Errorf("Unexpected suggestion details %q", appErr.Details)
	}

	_, err = svc.GetStory("completely-unrelated")
	if errors.GetAppError(err).Details != "" {
		t.Errorf("Expected no suggestions, got %q", errors.GetAppError(err).Details)
	}
}

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func TestPickStory(t *testing.T) {
	svc := newTestService(t, storage.WithRand(firstRand{}))

	story, err := svc.PickStory("")
	if err != nil {
		t.Fatalf("PickStory failed: %v", err)
	}
	if story.ID != "interview" {
		t.Errorf("Expected first file alphabetically, got %s", story.ID)
	}

	story, err = svc.PickStory("zoo-trip")
	if err != nil {
		t.Fatal(err)
	}
	if story.ID != "zoo-trip" {
		t.Errorf("Expected zoo-trip, got %s", story.ID)
	}
}

func TestWidthFor(t *testing.T) {
	svc := newTestService(t)

	zoo, err := svc.GetStory("zoo-trip")
	if err != nil {
		t.Fatal(err)
	}
	roses, err := svc.GetStory("roses")
	if err != nil {
		t.Fatal(err)
	}

	if got := svc.WidthFor(zoo); got != 40 {
		t.Errorf("Expected story width 40, got %d", got)
	}
	if got := svc.WidthFor(roses); got != config.DefaultLineWidth {
		t.Errorf("Expected default width, got %d", got)
	}

	svc.Config().SetLineWidth(25)
	if got := svc.WidthFor(zoo); got != 25 {
		t.Errorf("Expected locked width 25 to win, got %d", got)
	}
}
