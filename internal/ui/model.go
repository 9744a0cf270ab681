package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/fill-in-the-blank/internal/clipboard"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/game"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/renderer"
	"github.com/dpshade/fill-in-the-blank/internal/service"
	"github.com/dpshade/fill-in-the-blank/internal/validation"
)

// Copier puts text on the clipboard and reports a status line
type Copier interface {
	CopyWithStatus(text string) (string, error)
}

// Commands for async operations
type loadCompleteMsg struct {
	stories []*models.Story
	err     error
}

type storyLoadedMsg struct {
	story *models.Story
	err   error
}

// loadStoriesCmd lists the library (should be fast with cache)
func loadStoriesCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		stories, err := svc.ListStories()
		return loadCompleteMsg{stories: stories, err: err}
	}
}

// loadStoryCmd loads a story with its template; an empty id picks one at random
func loadStoryCmd(svc *service.Service, id string) tea.Cmd {
	return func() tea.Msg {
		story, err := svc.PickStory(id)
		return storyLoadedMsg{story: story, err: err}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewPreview
	ViewPrompt
	ViewResult
)

// Model represents the TUI application state
type Model struct {
	service    *service.Service
	clipboard  Copier
	errHandler *errors.TUIErrorHandler
	viewMode   ViewMode

	// UI components
	storyList list.Model
	viewport  viewport.Model
	input     textinput.Model
	help      help.Model
	keys      KeyMap

	// Data
	stories []*models.Story
	loading bool
	story   *models.Story
	round   *game.Round
	result  *game.Result

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusStyle   lipgloss.Style
	statusTimeout int

	showExpandedHelp bool
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	ExpandHelp key.Binding
	Random     key.Binding
	Copy       key.Binding
	CopyJSON   key.Binding
	New        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Random, k.New, k.Copy, k.CopyJSON},
		{k.ExpandHelp, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
	ExpandHelp: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+g", "expand help"),
	),
	Random: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "random story"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	CopyJSON: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy as JSON"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new round"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	if svc == nil {
		return nil, fmt.Errorf("service is required")
	}

	// Initialize adaptive colors based on terminal background
	initializeColors()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20) // Default size, will be updated on first WindowSizeMsg
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	keyMap := list.DefaultKeyMap()
	keyMap.Filter = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	)
	l.KeyMap = keyMap

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = "› "

	return &Model{
		service:    svc,
		clipboard:  clipboard.New(),
		errHandler: errors.NewTUIErrorHandler(false, svc.Config().LogDir()),
		viewMode:   ViewLibrary,
		storyList:  l,
		viewport:   vp,
		input:      ti,
		help:       help.New(),
		keys:       keys,
		loading:    true,
	}, nil
}

// SetClipboard replaces the clipboard used by the copy keys
func (m *Model) SetClipboard(c Copier) {
	m.clipboard = c
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadStoriesCmd(m.service)
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case loadCompleteMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		m.stories = msg.stories
		items := make([]list.Item, len(m.stories))
		for i, s := range m.stories {
			items[i] = s
		}
		return m, m.storyList.SetItems(items)

	case storyLoadedMsg:
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		return m, m.openPreview(msg.story)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.ExpandHelp) {
			m.showExpandedHelp = !m.showExpandedHelp
			return m, nil
		}

		switch m.viewMode {
		case ViewLibrary:
			return m.updateLibrary(msg)
		case ViewPreview:
			return m.updatePreview(msg)
		case ViewPrompt:
			return m.updatePrompt(msg)
		case ViewResult:
			return m.updateResult(msg)
		}
	}

	// Forward everything else (cursor blink, filter updates) to the active component
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewLibrary:
		m.storyList, cmd = m.storyList.Update(msg)
	case ViewPrompt:
		m.input, cmd = m.input.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering every key goes to the list
	if m.storyList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.storyList, cmd = m.storyList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter):
		if selected, ok := m.storyList.SelectedItem().(*models.Story); ok {
			return m, loadStoryCmd(m.service, selected.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Random):
		return m, loadStoryCmd(m.service, "")
	}

	var cmd tea.Cmd
	m.storyList, cmd = m.storyList.Update(msg)
	return m, cmd
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewLibrary
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m, m.startRound()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		log.Printf("round abandoned: story=%s answered=%d", m.story.ID, len(m.round.Responses))
		m.round = nil
		m.input.Blur()
		m.viewMode = ViewPreview
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if err := m.round.Answer(m.input.Value()); err != nil {
			return m, m.setError(err)
		}
		m.input.SetValue("")
		if m.round.Complete() {
			return m, m.finishRound()
		}
		m.preparePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewLibrary
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m, loadStoryCmd(m.service, "")
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyText(m.result.Wrapped)
	case key.Matches(msg, m.keys.CopyJSON):
		out, err := renderer.NewRenderer(m.story, m.result.Width).RenderJSON(m.result.Responses)
		if err != nil {
			return m, m.setError(err)
		}
		return m, m.copyText(out)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openPreview shows the story template with its blanks highlighted
func (m *Model) openPreview(story *models.Story) tea.Cmd {
	m.story = story
	m.result = nil
	m.viewMode = ViewPreview

	preview, err := renderer.NewRenderer(story, m.contentWidth()).RenderPreview(m.service.Config().Style)
	if err != nil {
		preview = story.Content
	}
	m.viewport.SetContent(preview)
	m.viewport.GotoTop()

	if result := validation.ValidateStory(story); !result.Valid {
		return m.setStatus(fmt.Sprintf("%d brace problem(s); they will be printed as text", len(result.Errors)), "warning")
	}
	return nil
}

// startRound begins prompting for the loaded story's blanks
func (m *Model) startRound() tea.Cmd {
	m.round = game.NewRound(m.story)
	log.Printf("round start: story=%s blanks=%d", m.story.ID, len(m.round.Labels))

	if m.round.Complete() {
		return m.finishRound()
	}

	m.viewMode = ViewPrompt
	m.input.SetValue("")
	m.preparePrompt()
	return m.input.Focus()
}

func (m *Model) preparePrompt() {
	if label, ok := m.round.Current(); ok {
		m.input.Placeholder = label
	}
}

// finishRound fills and wraps the story and shows it
func (m *Model) finishRound() tea.Cmd {
	m.input.Blur()

	result, err := m.round.Finish(m.service.WidthFor(m.story))
	if err != nil {
		log.Printf("round failed: story=%s: %v", m.story.ID, err)
		m.round = nil
		m.viewMode = ViewLibrary
		return m.setError(err)
	}

	log.Printf("round finished: story=%s width=%d", m.story.ID, result.Width)
	m.result = result
	m.round = nil
	m.viewMode = ViewResult
	m.viewport.SetContent(result.Wrapped)
	m.viewport.GotoTop()
	return nil
}

func (m *Model) copyText(text string) tea.Cmd {
	msg, err := m.clipboard.CopyWithStatus(text)
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus(msg, "success")
}

func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = CreateStatus(text, statusType)
	m.statusTimeout = 3
	return clearStatusCmd()
}

// setError shows err in the status line styled by severity and logs it
func (m *Model) setError(err error) tea.Cmd {
	err = m.errHandler.HandleError(err)
	icon, color := m.errHandler.GetErrorStyle(err)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Padding(0, 1)
	m.statusMsg = style.Render(icon + " " + m.errHandler.FormatError(err))
	m.statusTimeout = 5
	return clearStatusCmd()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// Reserve space for: title (1) + metadata (1) + help (2) + status (1) + margins (3)
	const minReservedHeight = 8
	availableHeight := height - minReservedHeight
	if availableHeight < 5 {
		availableHeight = 5
	}

	m.storyList.SetSize(width, availableHeight)
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = availableHeight - 4 // Container border and padding
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = m.contentWidth() - 4

	if m.viewMode == ViewPreview && m.story != nil {
		m.openPreview(m.story)
	}
}

// contentWidth is the width available inside the content container
func (m Model) contentWidth() int {
	w := m.width - 12
	if w < 40 {
		w = 40
	}
	return w
}
