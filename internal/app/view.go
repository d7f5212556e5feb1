package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"archdiff/internal/diffview"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	alertStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	commentBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			PaddingLeft(1).
			PaddingRight(1)
	inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// refreshContent re-renders the viewport from the current rows,
// splicing each anchored comment box under its row. Comment box
// heights are cached for scroll math.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	hasComment := func(row int) bool {
		_, _, ok := m.overlay.CommentAtRow(row)
		return ok
	}
	lines := diffview.RenderRows(m.rows, m.view.Width, m.cfg.TabWidth, m.cursor, hasComment, m.hl)

	m.commentHeights = make([]int, len(m.rows))
	var content []string
	for i, line := range lines {
		content = append(content, line)
		if c, _, ok := m.overlay.CommentAtRow(i); ok {
			box := m.renderCommentBox(c.Text)
			m.commentHeights[i] = lipgloss.Height(box)
			content = append(content, box)
		}
	}
	m.view.SetContent(strings.Join(content, "\n"))
}

func (m Model) renderCommentBox(text string) string {
	boxWidth := max(10, m.view.Width-4)
	return commentBoxStyle.Width(boxWidth).Render(text)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render("archdiff")
	info := statusStyle.Render(fmt.Sprintf(" %s · %d file(s) · %d comment(s)", m.repoRoot, len(m.files), len(m.overlay.Unsent())))
	if m.loading {
		info += statusStyle.Render(" · loading…")
	}
	if m.sending {
		info += statusStyle.Render(" · sending…")
	}
	return title + info
}

func (m Model) renderFooter() string {
	if m.commentActive {
		return inputPromptStyle.Render("comment> ") + m.commentInput.View()
	}
	if m.alertMsg != "" {
		return alertStyle.Render(m.alertMsg)
	}
	if m.helpOpen {
		return statusStyle.Render(m.helpText())
	}
	return statusStyle.Render("j/k move · z fold · c comment · d delete · s send · r reload · ? help · q quit")
}

func (m Model) helpText() string {
	return strings.Join([]string{
		"j/k move  g/G top/bottom  ctrl+d/u page",
		"z fold file  Z fold all  E expand all",
		"c comment line  d delete comment  s send to agent  r reload",
	}, " | ")
}
