package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"archdiff/internal/comments"
	"archdiff/internal/config"
	"archdiff/internal/diffview"
)

const sampleDiff = "diff --git a/x.txt b/x.txt\n@@ -1,2 +1,3 @@\n context\n-old\n+new\n+added\n"

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.AppConfig{TabWidth: 4}
	m := NewModel(t.TempDir(), cfg, zerolog.Nop())

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)
	loaded, _ := m.Update(diffLoadedMsg{files: diffview.Parse([]byte(sampleDiff))})
	return loaded.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (m Model) rowAtCursor() diffview.DisplayRow {
	return m.rows[m.cursor]
}

func TestLoadProjectsRows(t *testing.T) {
	m := newTestModel(t)
	if len(m.rows) != 6 {
		t.Fatalf("row count = %d, want 6 (header + hunk + 4 lines)", len(m.rows))
	}
	if _, ok := m.rows[0].(diffview.FileHeaderRow); !ok {
		t.Fatalf("first row is %T, want FileHeaderRow", m.rows[0])
	}
}

func TestLoadErrorShowsSingleMessageRow(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(diffLoadedMsg{err: errTest})
	m = updated.(Model)

	if len(m.rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(m.rows))
	}
	if _, ok := m.rows[0].(diffview.MessageRow); !ok {
		t.Fatalf("row is %T, want MessageRow", m.rows[0])
	}
}

func TestFoldToggleCollapsesAndRestores(t *testing.T) {
	m := newTestModel(t)
	before := len(m.rows)

	updated, _ := m.Update(keyMsg("z"))
	m = updated.(Model)
	if len(m.rows) != 1 {
		t.Fatalf("collapsed row count = %d, want 1", len(m.rows))
	}
	if _, ok := m.rowAtCursor().(diffview.FileHeaderRow); !ok {
		t.Fatalf("cursor after fold on %T, want FileHeaderRow", m.rowAtCursor())
	}

	updated, _ = m.Update(keyMsg("z"))
	m = updated.(Model)
	if len(m.rows) != before {
		t.Fatalf("expanded row count = %d, want %d", len(m.rows), before)
	}
}

func TestCommentSurvivesFoldCycle(t *testing.T) {
	m := newTestModel(t)

	// Move onto the "+new" line (header, hunk, context, -old, +new).
	for i := 0; i < 4; i++ {
		updated, _ := m.Update(keyMsg("j"))
		m = updated.(Model)
	}
	lr, ok := m.rowAtCursor().(diffview.DiffLineRow)
	if !ok || lr.Line.Text != "new" {
		t.Fatalf("cursor not on +new: %#v", m.rowAtCursor())
	}

	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)
	if !m.commentActive {
		t.Fatal("comment input did not activate")
	}
	m.commentInput.SetValue("needs a test")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	cs := m.overlay.Unsent()
	if len(cs) != 1 {
		t.Fatalf("comment count = %d, want 1", len(cs))
	}
	if cs[0].Key != (comments.Key{File: "x.txt", Line: 2}) {
		t.Fatalf("comment key = %+v", cs[0].Key)
	}
	if cs[0].RowIndex < 0 {
		t.Fatal("comment not anchored after add")
	}

	// Fold then expand; the comment must re-anchor to the same line.
	updated, _ = m.Update(keyMsg("z"))
	m = updated.(Model)
	if cs[0].RowIndex != -1 {
		t.Fatalf("comment row index = %d while folded, want -1", cs[0].RowIndex)
	}
	updated, _ = m.Update(keyMsg("z"))
	m = updated.(Model)
	if cs[0].RowIndex < 0 {
		t.Fatal("comment lost after fold cycle")
	}
	anchored, ok := m.rows[cs[0].RowIndex].(diffview.DiffLineRow)
	if !ok || anchored.Line.NewLine == nil || *anchored.Line.NewLine != 2 {
		t.Fatalf("comment re-anchored to wrong row: %#v", m.rows[cs[0].RowIndex])
	}
}

func TestDeleteCommentAtCursor(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		updated, _ := m.Update(keyMsg("j"))
		m = updated.(Model)
	}
	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)
	m.commentInput.SetValue("short lived")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("d"))
	m = updated.(Model)
	if len(m.overlay.Unsent()) != 0 {
		t.Fatalf("comment count after delete = %d, want 0", len(m.overlay.Unsent()))
	}
}

func TestSentSparesCommentAddedMidFlight(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		updated, _ := m.Update(keyMsg("j"))
		m = updated.(Model)
	}
	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)
	m.commentInput.SetValue("in the payload")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	snapshot := m.overlay.Unsent()

	// A second comment lands while the send is still in flight.
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("c"))
	m = updated.(Model)
	m.commentInput.SetValue("added later")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, _ = m.Update(sentMsg{delivered: snapshot})
	m = updated.(Model)

	live := m.overlay.Unsent()
	if len(live) != 1 || live[0].Text != "added later" {
		t.Fatalf("mid-flight comment was frozen: %+v", live)
	}
	if !snapshot[0].Sent {
		t.Fatal("delivered comment not marked sent")
	}
}

func TestMouseClickMovesCursor(t *testing.T) {
	m := newTestModel(t)
	click := tea.MouseMsg{Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ := m.Update(click)
	m = updated.(Model)

	// Screen line 3 is content line 2 below the one-line header.
	if m.cursor != 2 {
		t.Fatalf("cursor after click = %d, want 2", m.cursor)
	}

	// The header line resolves to nothing.
	updated, _ = m.Update(tea.MouseMsg{Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(Model)
	if m.cursor != 2 {
		t.Fatalf("header click moved the cursor to %d", m.cursor)
	}
}

func TestMouseClickOnCommentBoxOpensInput(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		updated, _ := m.Update(keyMsg("j"))
		m = updated.(Model)
	}
	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)
	m.commentInput.SetValue("click me")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	boxH := m.commentHeights[4]
	if boxH < 1 {
		t.Fatalf("comment box height = %d", boxH)
	}

	// Rows 0-4 occupy content lines 0-4; the box sits directly below.
	click := tea.MouseMsg{Y: 1 + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ = m.Update(click)
	m = updated.(Model)

	if !m.commentActive || m.commentTarget != 4 {
		t.Fatalf("comment box click: active=%v target=%d", m.commentActive, m.commentTarget)
	}
	if m.commentInput.Value() != "click me" {
		t.Fatalf("input not prefilled: %q", m.commentInput.Value())
	}
}

func TestReloadResetsViewOffset(t *testing.T) {
	cfg := config.AppConfig{TabWidth: 4}
	m := NewModel(t.TempDir(), cfg, zerolog.Nop())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 5})
	m = sized.(Model)
	loaded, _ := m.Update(diffLoadedMsg{files: diffview.Parse([]byte(sampleDiff))})
	m = loaded.(Model)

	updated, _ := m.Update(keyMsg("G"))
	m = updated.(Model)
	if m.view.YOffset == 0 {
		t.Fatal("jump to bottom did not scroll the viewport")
	}

	reloaded, _ := m.Update(diffLoadedMsg{files: diffview.Parse([]byte(sampleDiff))})
	m = reloaded.(Model)
	if m.view.YOffset != 0 {
		t.Fatalf("viewport offset after reload = %d, want 0", m.view.YOffset)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor after reload = %d, want 0", m.cursor)
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }

var errTest = testErr("diff tool unavailable")
