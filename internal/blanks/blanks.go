package blanks

import (
	"fmt"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
)

// Labels returns the label of every blank in template order. Repeated labels
// are kept; each occurrence is its own blank.
func Labels(template string) []string {
	tokens := Tokenize(template)
	labels := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsBlank() {
			labels = append(labels, tok.Label)
		}
	}
	return labels
}

// Count returns the number of blanks in template
func Count(template string) int {
	n := 0
	for _, tok := range Tokenize(template) {
		if tok.IsBlank() {
			n++
		}
	}
	return n
}

// Fill replaces each blank with the response at the same position. The number
// of responses must equal the number of blanks; otherwise Fill returns an
// OUT_OF_RANGE error and no text.
func Fill(template string, responses []string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	next := 0
	for _, tok := range Tokenize(template) {
		if !tok.IsBlank() {
			b.WriteString(tok.Raw)
			continue
		}
		if next >= len(responses) {
			return "", errors.OutOfRangeError(fmt.Sprintf("no response for blank %d %q", next+1, tok.Label)).
				WithDetails(fmt.Sprintf("%d responses supplied", len(responses))).
				WithContext("blank", next+1).
				WithContext("offset", tok.Start)
		}
		b.WriteString(responses[next])
		next++
	}

	if next != len(responses) {
		return "", errors.OutOfRangeError(fmt.Sprintf("%d responses supplied for %d blanks", len(responses), next)).
			WithContext("blanks", next)
	}

	return b.String(), nil
}
