package models

import (
	"reflect"
	"testing"
)

func TestTitleFromID(t *testing.T) {
	tests := map[string]string{
		"roses":             "Roses",
		"the-haunted_house": "The Haunted House",
		"día.de.campo":      "Día De Campo",
		"":                  "",
	}
	for id, want := range tests {
		if got := TitleFromID(id); got != want {
			t.Errorf("TitleFromID(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestStoryListItem(t *testing.T) {
	story := Story{
		ID:     "zoo-trip",
		Author: "Jacob",
		Tags:   []string{"animals", "short"},
		Blanks: 4,
	}

	if story.Title() != "Zoo Trip" {
		t.Errorf("Expected derived title 'Zoo Trip', got '%s'", story.Title())
	}
	if story.Description() != "4 blanks • by Jacob • Tags: animals, short" {
		t.Errorf("Unexpected description '%s'", story.Description())
	}
	if story.FilterValue() != "Zoo Trip animals short" {
		t.Errorf("Unexpected filter value '%s'", story.FilterValue())
	}

	story.Name = "A Day at the Zoo"
	if story.Title() != "A Day at the Zoo" {
		t.Errorf("Expected frontmatter title, got '%s'", story.Title())
	}
}

func TestStoryLabels(t *testing.T) {
	story := &Story{Content: "Roses are {color}, {plural noun} are {color}"}
	want := []string{"color", "plural noun", "color"}
	if got := story.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
