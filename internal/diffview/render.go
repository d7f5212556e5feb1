package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

var (
	fileHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	hunkHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	addStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	messageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	gutterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderRows renders the projection into one string per display row,
// each at most width columns wide. tabWidth must match the projector's
// tab stop or wrapped slices render at the wrong width; 0 falls back to
// the default. cursor marks the active row, hasComment marks rows with
// an anchored comment, hl may be nil to disable syntax highlighting.
func RenderRows(rows []DisplayRow, width, tabWidth, cursor int, hasComment func(row int) bool, hl *Highlighter) []string {
	if width < 1 {
		width = 1
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	numW := lineNumberWidth(rows)

	out := make([]string, 0, len(rows))
	for i, row := range rows {
		out = append(out, renderRow(row, width, numW, tabWidth, i == cursor, hasComment != nil && hasComment(i), hl))
	}
	return out
}

func renderRow(row DisplayRow, width, numW, tabWidth int, isCursor, commented bool, hl *Highlighter) string {
	cursorMark := " "
	if isCursor {
		cursorMark = "▸"
	}
	commentMark := " "
	if commented {
		commentMark = "◉"
	}
	prefix := cursorMark + commentMark + " "
	lineWidth := width - runewidth.StringWidth(prefix)
	if lineWidth < 1 {
		lineWidth = 1
	}

	switch r := row.(type) {
	case FileHeaderRow:
		label := r.File.Path
		if r.File.Collapsed {
			label = "▸ " + label
		} else {
			label = "▾ " + label
		}
		return prefix + fit(fileHeaderStyle.Render(label), lineWidth)

	case HunkHeaderRow:
		return prefix + fit(hunkHeaderStyle.Render(r.Hunk.Header), lineWidth)

	case MessageRow:
		return prefix + fit(messageStyle.Render(r.Text), lineWidth)

	case DiffLineRow:
		return prefix + fit(renderDiffLine(r, numW, tabWidth, hl), lineWidth)
	}
	return prefix + strings.Repeat(" ", lineWidth)
}

func renderDiffLine(r DiffLineRow, numW, tabWidth int, hl *Highlighter) string {
	marker := ' '
	style := lipgloss.NewStyle()
	switch r.Line.Kind {
	case LineAdd:
		marker = '+'
		style = addStyle
	case LineRemove:
		marker = '-'
		style = removeStyle
	}

	gutter := fmt.Sprintf("%*s %*s", numW, lineNumberText(r.Line.OldLine), numW, lineNumberText(r.Line.NewLine))
	markerText := string(marker)
	if r.ByteOffset > 0 {
		// Continuation slices keep the gutter blank so the logical line
		// reads as one unit.
		gutter = strings.Repeat(" ", 2*numW+1)
		markerText = " "
	}

	text := expandTabs(r.Text, tabWidth)
	if hl != nil {
		text = hl.Line(r.File.Path, text)
	}
	return gutterStyle.Render(gutter) + " " + style.Render(markerText+" ") + text
}

func lineNumberText(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func lineNumberWidth(rows []DisplayRow) int {
	maxLn := 0
	for _, row := range rows {
		r, ok := row.(DiffLineRow)
		if !ok {
			continue
		}
		if r.Line.OldLine != nil && *r.Line.OldLine > maxLn {
			maxLn = *r.Line.OldLine
		}
		if r.Line.NewLine != nil && *r.Line.NewLine > maxLn {
			maxLn = *r.Line.NewLine
		}
	}
	w := len(fmt.Sprintf("%d", maxLn))
	if w < 3 {
		w = 3
	}
	return w
}

// fit truncates styled text to width columns and pads the remainder.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
