package blanks

import (
	"reflect"
	"testing"
)

func TestLint(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Issue
	}{
		{"clean", roses, nil},
		{
			"stray close",
			"a } b {c}",
			[]Issue{{Kind: IssueStrayClose, Offset: 2, Line: 1, Column: 3}},
		},
		{
			"nested open",
			"a {x {y} b",
			[]Issue{{Kind: IssueNestedOpen, Offset: 2, Line: 1, Column: 3}},
		},
		{
			"unclosed open",
			"hello {name",
			[]Issue{{Kind: IssueUnclosedOpen, Offset: 6, Line: 1, Column: 7}},
		},
		{
			"empty label",
			"{}",
			[]Issue{{Kind: IssueEmptyLabel, Offset: 0, Line: 1, Column: 1}},
		},
		{
			"second line position",
			"line one\nab }",
			[]Issue{{Kind: IssueStrayClose, Offset: 12, Line: 2, Column: 4}},
		},
		{
			"column counts runes",
			"é}",
			[]Issue{{Kind: IssueStrayClose, Offset: 2, Line: 1, Column: 2}},
		},
		{
			"several in order",
			"} {a {} {b",
			[]Issue{
				{Kind: IssueStrayClose, Offset: 0, Line: 1, Column: 1},
				{Kind: IssueNestedOpen, Offset: 2, Line: 1, Column: 3},
				{Kind: IssueEmptyLabel, Offset: 5, Line: 1, Column: 6},
				{Kind: IssueUnclosedOpen, Offset: 8, Line: 1, Column: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lint(tt.template)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lint(%q) = %+v, want %+v", tt.template, got, tt.want)
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	issue := Issue{Kind: IssueUnclosedOpen, Offset: 6, Line: 1, Column: 7}
	want := "1:7: '{' is never closed and is kept as text"
	if issue.String() != want {
		t.Errorf("Expected %q, got %q", want, issue.String())
	}
}
