// Package wrap reflows text to a maximum line width, breaking only at
// whitespace.
package wrap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
	runewidth "github.com/mattn/go-runewidth"
)

// DefaultWidth is the line width used when none is configured
const DefaultWidth = 70

// WordWrap breaks text into lines no wider than maxWidth display columns.
//
// Wrapping only ever turns an existing whitespace rune into '\n'; no rune is
// added or removed. Existing newlines start a fresh line. A run without
// whitespace that is wider than maxWidth is left whole and its line breaks
// at the next whitespace after it.
func WordWrap(text string, maxWidth int) (string, error) {
	if maxWidth <= 0 {
		return "", errors.InvalidArgumentError(fmt.Sprintf("wrap width must be positive, got %d", maxWidth)).
			WithContext("width", maxWidth)
	}

	runes := []rune(text)

	col := 0        // width of the current line so far
	lastSpace := -1 // index of the latest whitespace on the current line
	sinceSpace := 0 // width of the runes after lastSpace

	for i, r := range runes {
		if r == '\n' {
			col, lastSpace, sinceSpace = 0, -1, 0
			continue
		}

		w := runeWidth(r)

		if unicode.IsSpace(r) {
			if col+w > maxWidth {
				runes[i] = '\n'
				col, lastSpace, sinceSpace = 0, -1, 0
				continue
			}
			col += w
			lastSpace, sinceSpace = i, 0
			continue
		}

		if col+w > maxWidth && lastSpace >= 0 {
			runes[lastSpace] = '\n'
			col, lastSpace = sinceSpace, -1
		}
		col += w
		sinceSpace += w
	}

	return string(runes), nil
}

// Lines wraps text and returns the resulting lines
func Lines(text string, maxWidth int) ([]string, error) {
	wrapped, err := WordWrap(text, maxWidth)
	if err != nil {
		return nil, err
	}
	return strings.Split(wrapped, "\n"), nil
}

// runeWidth is the display width of r. Whitespace always occupies at least
// one column so tabs and carriage returns can be wrap points.
func runeWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w == 0 && unicode.IsSpace(r) {
		return 1
	}
	return w
}
