package blanks

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IssueKind identifies a questionable construct in a template
type IssueKind string

const (
	IssueStrayClose   IssueKind = "stray_close"
	IssueNestedOpen   IssueKind = "nested_open"
	IssueUnclosedOpen IssueKind = "unclosed_open"
	IssueEmptyLabel   IssueKind = "empty_label"
)

// Issue is a construct the marker rules accept but an author probably did not
// intend. Line and Column are 1-based; Column counts runes.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Offset int       `json:"offset"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Kind.Describe())
}

// Describe returns a short human readable explanation
func (k IssueKind) Describe() string {
	switch k {
	case IssueStrayClose:
		return "'}' without a matching '{' is kept as text"
	case IssueNestedOpen:
		return "'{' abandoned by a later '{' is kept as text"
	case IssueUnclosedOpen:
		return "'{' is never closed and is kept as text"
	case IssueEmptyLabel:
		return "blank has an empty label"
	default:
		return string(k)
	}
}

// Lint reports every issue in template, ordered by offset
func Lint(template string) []Issue {
	var issues []Issue
	tokenize(template, func(kind IssueKind, offset int) {
		line, col := position(template, offset)
		issues = append(issues, Issue{Kind: kind, Offset: offset, Line: line, Column: col})
	})
	return issues
}

func position(s string, offset int) (int, int) {
	before := s[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[lineStart:]) + 1
}
