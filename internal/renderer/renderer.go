package renderer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/fill-in-the-blank/internal/blanks"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/wrap"
	"github.com/muesli/termenv"
)

// Renderer turns a story and the player's responses into output
type Renderer struct {
	story *models.Story
	width int
}

// NewRenderer creates a new renderer instance
func NewRenderer(story *models.Story, width int) *Renderer {
	return &Renderer{
		story: story,
		width: width,
	}
}

// RenderText fills the story and word-wraps it
func (r *Renderer) RenderText(responses []string) (string, error) {
	filled, err := blanks.Fill(r.story.Content, responses)
	if err != nil {
		return "", err
	}

	return wrap.WordWrap(filled, r.width)
}

// Blank pairs a label with the response given for it
type Blank struct {
	Label    string `json:"label"`
	Response string `json:"response"`
}

// Output is the JSON shape of a finished story
type Output struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Width  int     `json:"width"`
	Blanks []Blank `json:"blanks"`
	Text   string  `json:"text"`
}

// Output fills and wraps the story and pairs every label with its response
func (r *Renderer) Output(responses []string) (*Output, error) {
	text, err := r.RenderText(responses)
	if err != nil {
		return nil, err
	}

	labels := blanks.Labels(r.story.Content)
	out := &Output{
		ID:     r.story.ID,
		Title:  r.story.DisplayTitle(),
		Width:  r.width,
		Blanks: make([]Blank, len(labels)),
		Text:   text,
	}
	for i, label := range labels {
		out.Blanks[i] = Blank{Label: label, Response: responses[i]}
	}
	return out, nil
}

// RenderJSON renders the finished story with its blanks as indented JSON
func (r *Renderer) RenderJSON(responses []string) (string, error) {
	out, err := r.Output(responses)
	if err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// PreviewMarkdown returns the template as markdown with every blank shown as
// an emphasised, underscored placeholder.
func (r *Renderer) PreviewMarkdown() string {
	var b strings.Builder
	b.WriteString("# " + r.story.DisplayTitle() + "\n\n")

	for _, tok := range blanks.Tokenize(r.story.Content) {
		if tok.IsBlank() {
			fmt.Fprintf(&b, "**\\_\\_\\_ (%s) \\_\\_\\_**", tok.Label)
			continue
		}
		b.WriteString(tok.Raw)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderPreview renders PreviewMarkdown for the terminal with glamour
func (r *Renderer) RenderPreview(style string) (string, error) {
	tr, err := NewGlamourRenderer(style, r.width)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := tr.Render(r.PreviewMarkdown())
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return out, nil
}

// NewGlamourRenderer creates a glamour renderer. style is one of glamour's
// standard styles or "auto"; GLAMOUR_STYLE overrides it.
func NewGlamourRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	if env := os.Getenv("GLAMOUR_STYLE"); env != "" {
		style = env
	}

	if style != "" && style != "auto" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	// Detect terminal capabilities and background
	profile := termenv.ColorProfile()
	var styleOption glamour.TermRendererOption
	switch {
	case profile == termenv.Ascii:
		styleOption = glamour.WithStandardStyle("notty")
	case lipgloss.HasDarkBackground():
		styleOption = glamour.WithStandardStyle("dark")
	default:
		styleOption = glamour.WithStandardStyle("light")
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}
