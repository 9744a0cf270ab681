package wrap

import (
	"reflect"
	"strings"
	"testing"
	"unicode"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
	runewidth "github.com/mattn/go-runewidth"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"even words", "aaaa bbbb cccc dddd", 5, "aaaa\nbbbb\ncccc\ndddd"},
		{"fits", "hello world", 70, "hello world"},
		{"empty", "", 10, ""},
		{"exact fit breaks at following space", "aaaaa bbbbb", 5, "aaaaa\nbbbbb"},
		{"existing newline resets column", "aaa\nbbb ccc", 7, "aaa\nbbb ccc"},
		{"overlong first word is not split", "abcdefghij klm", 4, "abcdefghij\nklm"},
		{"overlong middle word", "ab cdefghij kl", 4, "ab\ncdefghij\nkl"},
		{"wide runes count double", "日本 語", 4, "日本\n語"},
		{"tab is a break point", "a\tb", 2, "a\nb"},
		{"width one", "a b c", 1, "a\nb\nc"},
		{"greedy fill", "the quick brown fox jumps", 10, "the quick\nbrown fox\njumps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WordWrap(tt.text, tt.width)
			if err != nil {
				t.Fatalf("WordWrap returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("WordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWordWrapInvalidWidth(t *testing.T) {
	for _, width := range []int{0, -3} {
		got, err := WordWrap("some text", width)
		if err == nil {
			t.Fatalf("Expected error for width %d, got %q", width, got)
		}
		if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("Expected INVALID_ARGUMENT for width %d, got %v", width, err)
		}
	}
}

func TestWordWrapOnlyReplacesWhitespace(t *testing.T) {
	text := "Once upon a time, a very large purple hippopotamus danced wildly\n" +
		"across the kitchen floor while\tthe neighbours watched in silent awe."

	for _, width := range []int{1, 3, 5, 10, 17, 70} {
		got, err := WordWrap(text, width)
		if err != nil {
			t.Fatalf("WordWrap returned error: %v", err)
		}

		in, out := []rune(text), []rune(got)
		if len(in) != len(out) {
			t.Fatalf("width %d: rune count changed from %d to %d", width, len(in), len(out))
		}
		for i := range in {
			if in[i] == out[i] {
				continue
			}
			if !unicode.IsSpace(in[i]) || out[i] != '\n' {
				t.Errorf("width %d: rune %d changed from %q to %q", width, i, in[i], out[i])
			}
		}

		if nonSpace(text) != nonSpace(got) {
			t.Errorf("width %d: non-whitespace content changed", width)
		}
	}
}

func TestWordWrapLineWidths(t *testing.T) {
	text := strings.Repeat("Roses are red, dogs are blue, and the word count keeps growing. ", 8)

	for _, width := range []int{8, 9, 20, 70} {
		lines, err := Lines(text, width)
		if err != nil {
			t.Fatalf("Lines returned error: %v", err)
		}
		for _, line := range lines {
			if runewidth.StringWidth(line) > width {
				t.Errorf("width %d: line %q is %d columns", width, line, runewidth.StringWidth(line))
			}
		}
	}
}

func TestWordWrapLeavesFirstWordIntact(t *testing.T) {
	got, err := WordWrap("Supercalifragilistic is long", 5)
	if err != nil {
		t.Fatalf("WordWrap returned error: %v", err)
	}
	if !strings.HasPrefix(got, "Supercalifragilistic\n") {
		t.Errorf("Expected first word untouched, got %q", got)
	}
}

func TestLines(t *testing.T) {
	got, err := Lines("aaaa bbbb", 5)
	if err != nil {
		t.Fatalf("Lines returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"aaaa", "bbbb"}) {
		t.Errorf("Unexpected lines %q", got)
	}

	if _, err := Lines("x", 0); err == nil {
		t.Error("Expected error for zero width")
	}
}

func nonSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
