package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gid/internal/service"
)

func TestFormatItems(t *testing.T) {
	items := []service.Item{
		{ID: "a", Title: "Buy milk"},
		{ID: "b", Title: "Clean\nkitchen"},
		{ID: "c", Title: "  "},
	}

	for _, style := range append(Styles, "unknown") {
		t.Run(style, func(t *testing.T) {
			var buf bytes.Buffer
			FormatItems(&buf, style, items)
			out := buf.String()

			for _, want := range []string{HeaderIndex, HeaderName, "Buy milk", "Clean kitchen", "(untitled)"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
			if !strings.HasSuffix(out, "\n") {
				t.Error("expected trailing newline")
			}
		})
	}
}

func TestFormatItems_IndicesMatchOrder(t *testing.T) {
	var buf bytes.Buffer
	FormatItems(&buf, "ascii", []service.Item{{Title: "first"}, {Title: "second"}})

	lines := strings.Split(buf.String(), "\n")
	var firstLine, secondLine string
	for _, line := range lines {
		if strings.Contains(line, "first") {
			firstLine = line
		}
		if strings.Contains(line, "second") {
			secondLine = line
		}
	}
	if !strings.Contains(firstLine, "0") {
		t.Errorf("expected index 0 on row %q", firstLine)
	}
	if !strings.Contains(secondLine, "1") {
		t.Errorf("expected index 1 on row %q", secondLine)
	}
}

func TestFormatItems_NamedBorders(t *testing.T) {
	tests := []struct {
		style   string
		want    []string
		notWant string
	}{
		{"ascii_rounded", []string{".", "'", "|", "-"}, "╭"},
		{"dots", []string{".", ":"}, "╭"},
		{"ascii", []string{"+", "|", "-"}, "╭"},
		{"rounded", []string{"╭", "╯"}, "+"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			var buf bytes.Buffer
			FormatItems(&buf, tt.style, []service.Item{{Title: "Buy milk"}})
			out := buf.String()

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in %s output:\n%s", want, tt.style, out)
				}
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("unexpected %q in %s output:\n%s", tt.notWant, tt.style, out)
			}
		})
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, errors.New("boom"))

	if buf.String() != "Error: boom\n" {
		t.Errorf("expected plain prefix for non-terminal writer, got %q", buf.String())
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := map[string]string{
		"":         "(untitled)",
		" \t":      "(untitled)",
		"a\r\nb":   "a  b",
		"Buy milk": "Buy milk",
	}
	for in, want := range tests {
		if got := normalizeTitle(in); got != want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
