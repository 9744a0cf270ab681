package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/fill-in-the-blank/internal/game"
)

// View renders the current view
func (m Model) View() string {
	var mainView string

	switch m.viewMode {
	case ViewLibrary:
		mainView = m.renderLibraryView()
	case ViewPreview:
		mainView = m.renderPreviewView()
	case ViewPrompt:
		mainView = m.renderPromptView()
	case ViewResult:
		mainView = m.renderResultView()
	default:
		mainView = "Unknown view mode"
	}

	if m.statusMsg != "" {
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, m.statusMsg))
	}
	return AddMainPadding(mainView)
}

// renderLibraryView renders the story list
func (m Model) renderLibraryView() string {
	title := CreateHeader("Fill In The Blank")

	elements := []string{title}
	if m.loading {
		elements = append(elements, StyleLoading.Render("⏳ Loading stories..."))
	} else {
		elements = append(elements, CreateMetadata(fmt.Sprintf("%d stories", len(m.stories))))
		elements = append(elements, m.storyList.View())
	}

	essential := []string{"enter choose • r random • q quit"}
	additional := []string{"/ filter • ↑/↓ move"}
	elements = append(elements, CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

// renderPreviewView renders the template before a round starts
func (m Model) renderPreviewView() string {
	if m.story == nil {
		return "No story selected"
	}

	header := CreateHeader(m.story.DisplayTitle())
	metadata := CreateMetadata(m.storyMetadata())

	essential := []string{"enter play • esc back • q quit"}
	additional := []string{"↑/↓ scroll"}
	help := CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, metadata, m.renderContent(), help)
}

// renderPromptView asks for the current blank
func (m Model) renderPromptView() string {
	if m.round == nil {
		return "No round in progress"
	}

	header := CreateHeader(m.story.DisplayTitle())
	progress := CreateProgress(len(m.round.Responses), len(m.round.Labels))

	label, _ := m.round.Current()
	question := StyleText.Render("Enter "+game.Article(label)+" ") + StyleLabel.Render(label) + StyleText.Render(":")

	body := lipgloss.JoinVertical(lipgloss.Left, "", question, "", m.input.View(), "")

	essential := []string{"enter next • esc abandon round"}
	additional := []string{"Ctrl+c quit"}
	help := CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, progress, StyleContentContainer.Render(body), help)
}

// renderResultView shows the finished story
func (m Model) renderResultView() string {
	if m.result == nil {
		return "No story finished"
	}

	header := CreateHeader(m.result.Title)
	metadata := CreateMetadata(fmt.Sprintf("%d blanks filled • wrapped at %d columns", len(m.result.Responses), m.result.Width))

	help := CreateContextualHelp(
		[]string{"c copy • n new round • q quit"},
		[]string{"y copy JSON • esc library • ↑/↓ scroll"},
		m.showExpandedHelp, m.width)
	if m.showExpandedHelp {
		help = lipgloss.JoinVertical(lipgloss.Left, help, m.help.FullHelpView(m.keys.FullHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, metadata, m.renderContent(), help)
}

// renderContent wraps the viewport in the content container with scroll indicators
func (m Model) renderContent() string {
	top, bottom := CreateScrollIndicators(!m.viewport.AtTop(), !m.viewport.AtBottom())
	return StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), bottom))
}

func (m Model) storyMetadata() string {
	parts := []string{"ID: " + m.story.ID}
	parts = append(parts, fmt.Sprintf("%d blanks", len(m.story.Labels())))
	if m.story.Author != "" {
		parts = append(parts, "by "+m.story.Author)
	}
	if len(m.story.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(m.story.Tags, ", "))
	}
	return strings.Join(parts, " • ")
}
