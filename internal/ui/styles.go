package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Design System Colors - Adaptive based on terminal background
var (
	// Primary brand colors
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	// Semantic colors
	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	// Neutral colors (contrast-adaptive)
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
// and rebuilds the styles that use them
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
	case "dark":
		setDarkThemeColors()
	default:
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}
	buildStyles()
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")   // Bright magenta/pink
	ColorSecondary = lipgloss.Color("33")  // Bright cyan/blue
	ColorAccent = lipgloss.Color("214")    // Bright orange/yellow
	ColorSuccess = lipgloss.Color("10")    // Bright green
	ColorWarning = lipgloss.Color("11")    // Bright yellow
	ColorError = lipgloss.Color("9")       // Bright red
	ColorInfo = lipgloss.Color("12")       // Bright blue
	ColorText = lipgloss.Color("252")      // Near white
	ColorTextMuted = lipgloss.Color("244") // Light gray
	ColorTextDim = lipgloss.Color("240")   // Medium gray
	ColorBorder = lipgloss.Color("238")    // Dark gray
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")   // Darker magenta for contrast
	ColorSecondary = lipgloss.Color("24")  // Darker cyan
	ColorAccent = lipgloss.Color("130")    // Darker orange
	ColorSuccess = lipgloss.Color("22")    // Dark green
	ColorWarning = lipgloss.Color("136")   // Dark yellow/orange
	ColorError = lipgloss.Color("160")     // Dark red
	ColorInfo = lipgloss.Color("24")       // Dark blue
	ColorText = lipgloss.Color("232")      // Near black
	ColorTextMuted = lipgloss.Color("240") // Dark gray
	ColorTextDim = lipgloss.Color("244")   // Medium gray
	ColorBorder = lipgloss.Color("248")    // Light gray
}

// Component Styles
var (
	StyleTitle            lipgloss.Style
	StyleText             lipgloss.Style
	StyleTextDim          lipgloss.Style
	StyleLabel            lipgloss.Style
	StyleProgress         lipgloss.Style
	StyleSuccess          lipgloss.Style
	StyleWarning          lipgloss.Style
	StyleError            lipgloss.Style
	StyleInfo             lipgloss.Style
	StyleMetadata         lipgloss.Style
	StyleLoading          lipgloss.Style
	StyleContentContainer lipgloss.Style
)

func buildStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().
		Foreground(ColorText)

	StyleTextDim = lipgloss.NewStyle().
		Foreground(ColorTextDim)

	StyleLabel = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	StyleProgress = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true).
		Padding(0, 1)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true).
		Padding(0, 1)

	StyleInfo = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true).
		Padding(0, 1)

	StyleMetadata = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Padding(0, 1)

	StyleLoading = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Italic(true).
		Padding(0, 1)

	// Content container for previews and finished stories
	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		MarginTop(1).
		MarginBottom(1)
}

// CreateHeader renders a page title
func CreateHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

func CreateMetadata(text string) string {
	return StyleMetadata.Render(text)
}

// Context-aware help creation with proper row display and smart truncation
func CreateContextualHelp(essential []string, additional []string, showExpanded bool, width int) string {
	var lines []string

	// First row: essential keybinds + Ctrl+g hint if there are additional keys
	firstRowParts := essential
	if len(additional) > 0 && !showExpanded {
		firstRowParts = append(firstRowParts, "Ctrl+g for more")
	}

	lines = append(lines, truncate(strings.Join(firstRowParts, " • "), width))
	if showExpanded {
		for _, row := range additional {
			lines = append(lines, truncate(row, width))
		}
	}

	return StyleTextDim.Render(strings.Join(lines, "\n"))
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if width > 7 && len(runes) > width-4 {
		return string(runes[:width-7]) + "..."
	}
	return text
}

// CreateStatus renders a status line in the style for statusType
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateProgress renders "Blank 2 of 5" with a bar of filled and empty cells
func CreateProgress(done, total int) string {
	if total <= 0 {
		return ""
	}
	const cells = 20
	filled := done * cells / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
	current := done + 1
	if current > total {
		current = total
	}
	return StyleProgress.Render(bar + " Blank " + strconv.Itoa(current) + " of " + strconv.Itoa(total))
}

// Add consistent padding to main content (left only, no top padding)
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// Create scroll indicators based on scroll state
func CreateScrollIndicators(canScrollUp, canScrollDown bool) (string, string) {
	active := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	idle := lipgloss.NewStyle().Foreground(ColorTextDim)

	top := idle.Render("─────────")
	if canScrollUp {
		top = active.Render("...")
	}
	bottom := idle.Render("─────────")
	if canScrollDown {
		bottom = active.Render("...")
	}
	return top, bottom
}
