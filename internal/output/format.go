// Package output renders collection items as tables and reports errors.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"gid/internal/service"
)

// Table headers.
const (
	HeaderIndex = "#"
	HeaderName  = "Name"
)

// Styles lists the accepted table_style names.
var Styles = []string{"rounded", "ascii", "ascii_rounded", "markdown", "modern", "sharp", "extended", "dots", "thick", "block", "blank", "empty"}

// asciiRoundedBorder is ASCII with dot and apostrophe corners.
var asciiRoundedBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: ".", TopRight: ".", BottomLeft: "'", BottomRight: "'",
	MiddleLeft: ":", MiddleRight: ":", Middle: "+", MiddleTop: ".", MiddleBottom: "'",
}

// dotsBorder draws rules with '.' and column separators with ':'.
var dotsBorder = lipgloss.Border{
	Top: ".", Bottom: ".", Left: ":", Right: ":",
	TopLeft: ".", TopRight: ".", BottomLeft: ":", BottomRight: ":",
	MiddleLeft: ":", MiddleRight: ":", Middle: ":", MiddleTop: ".", MiddleBottom: ":",
}

var (
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// FormatItems writes items as a two-column table: the 0-based display index
// the resolver accepts, and the title. Unknown styles fall back to rounded.
func FormatItems(w io.Writer, style string, items []service.Item) {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{strconv.Itoa(i), normalizeTitle(item.Title)}
	}

	t := table.New().
		Headers(HeaderIndex, HeaderName).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	applyStyle(t, style)

	fmt.Fprintln(w, t.Render())
}

// applyStyle sets the border for a named style.
func applyStyle(t *table.Table, style string) {
	switch style {
	case "ascii":
		t.Border(lipgloss.ASCIIBorder())
	case "ascii_rounded":
		t.Border(asciiRoundedBorder)
	case "markdown":
		t.Border(lipgloss.MarkdownBorder()).BorderTop(false).BorderBottom(false)
	case "modern", "sharp":
		t.Border(lipgloss.NormalBorder())
	case "extended":
		t.Border(lipgloss.DoubleBorder())
	case "dots":
		t.Border(dotsBorder)
	case "thick":
		t.Border(lipgloss.ThickBorder())
	case "block":
		t.Border(lipgloss.BlockBorder())
	case "blank", "empty":
		t.Border(lipgloss.HiddenBorder())
	default:
		t.Border(lipgloss.RoundedBorder())
	}
}

// Error writes "Error: <err>" to w. The prefix is bold red on a terminal.
func Error(w io.Writer, err error) {
	Errorf(w, "%v", err)
}

// Errorf writes a formatted error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	prefix := "Error:"
	if isTerminal(w) {
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
