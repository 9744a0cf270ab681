// Package blanks finds and fills the {label} markers in a story template.
//
// Labels, Fill and Lint all walk the template through the same tokenizer, so
// the set of markers a player is prompted for is always the set that gets
// replaced.
//
// Marker rules:
//   - '{' opens a marker. A second '{' before the closing '}' abandons the
//     first one; the abandoned "{..." run stays in the text.
//   - '}' closes the open marker. The label is everything in between, which
//     may be empty or contain whitespace.
//   - A '}' with no open marker is ordinary text.
//   - A '{' that is never closed is ordinary text.
package blanks

// TokenKind distinguishes literal text from blank markers
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenBlank
)

// Token is one span of a template. Start and End are byte offsets into the
// template, End exclusive. For a blank, Raw is the full "{label}" span.
type Token struct {
	Kind  TokenKind
	Raw   string
	Label string
	Start int
	End   int
}

// IsBlank reports whether the token is a marker
func (t Token) IsBlank() bool {
	return t.Kind == TokenBlank
}

// Tokenize splits a template into text and blank tokens in template order.
// Concatenating Raw over the result reproduces the template exactly.
func Tokenize(template string) []Token {
	return tokenize(template, nil)
}

// tokenize is the single walk over the template. issue, when non-nil, is
// told about every construct the marker rules silently treat as text.
func tokenize(template string, issue func(IssueKind, int)) []Token {
	var tokens []Token
	report := func(kind IssueKind, offset int) {
		if issue != nil {
			issue(kind, offset)
		}
	}

	textStart := 0
	open := -1

	// Braces are ASCII, so walking bytes never splits a multi-byte rune.
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if open >= 0 {
				report(IssueNestedOpen, open)
			}
			open = i
		case '}':
			if open < 0 {
				report(IssueStrayClose, i)
				continue
			}
			if open > textStart {
				tokens = append(tokens, Token{
					Kind:  TokenText,
					Raw:   template[textStart:open],
					Start: textStart,
					End:   open,
				})
			}
			label := template[open+1 : i]
			if label == "" {
				report(IssueEmptyLabel, open)
			}
			tokens = append(tokens, Token{
				Kind:  TokenBlank,
				Raw:   template[open : i+1],
				Label: label,
				Start: open,
				End:   i + 1,
			})
			textStart = i + 1
			open = -1
		}
	}

	if open >= 0 {
		report(IssueUnclosedOpen, open)
	}
	if textStart < len(template) {
		tokens = append(tokens, Token{
			Kind:  TokenText,
			Raw:   template[textStart:],
			Start: textStart,
			End:   len(template),
		})
	}

	return tokens
}
