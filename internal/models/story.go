package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dpshade/fill-in-the-blank/internal/blanks"
)

// Story is a template with {label} blanks, optionally described by YAML
// frontmatter at the top of its file.
type Story struct {
	// Frontmatter fields
	Name   string   `yaml:"title" json:"title"`
	Author string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Width  int      `yaml:"width,omitempty" json:"width,omitempty"` // Preferred wrap width, 0 uses the configured one

	// Derived fields
	ID             string    `yaml:"-" json:"id"`                // File name without extension
	Content        string    `yaml:"-" json:"content,omitempty"` // The template text
	FilePath       string    `yaml:"-" json:"file"`              // Path relative to the story directory
	ModTime        time.Time `yaml:"-" json:"modified"`
	Blanks         int       `yaml:"-" json:"blanks"` // Number of blanks, filled in when loaded
	HasFrontmatter bool      `yaml:"-" json:"-"`
}

// Labels returns the blank labels of the story in order
func (s *Story) Labels() []string {
	return blanks.Labels(s.Content)
}

// DisplayTitle returns the frontmatter title, or a title derived from the ID
func (s *Story) DisplayTitle() string {
	if s.Name != "" {
		return s.Name
	}
	return TitleFromID(s.ID)
}

// TitleFromID turns "the-haunted_house" into "The Haunted House"
func TitleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (s Story) FilterValue() string {
	return s.DisplayTitle() + " " + strings.Join(s.Tags, " ")
}

// Title satisfies the list.DefaultItem interface
func (s Story) Title() string {
	return s.DisplayTitle()
}

// Description satisfies the list.DefaultItem interface
func (s Story) Description() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d blanks", s.Blanks))
	if s.Author != "" {
		parts = append(parts, "by "+s.Author)
	}
	if len(s.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(s.Tags, ", "))
	}
	return strings.Join(parts, " • ")
}
