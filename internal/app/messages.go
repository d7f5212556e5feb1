package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"archdiff/internal/comments"
	"archdiff/internal/diffview"
)

type diffLoadedMsg struct {
	files []*diffview.DiffFile
	err   error
}

type sentMsg struct {
	delivered []*comments.Comment
	err       error
}

type alertTickMsg struct{}

func alertTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

// loadDiffCmd acquires and parses the full diff off the update loop.
// The completed model is handed over whole; a discarded reload simply
// drops the message.
func (m Model) loadDiffCmd() tea.Cmd {
	acquirer := m.acquirer
	return func() tea.Msg {
		raw, err := acquirer.Acquire(context.Background())
		if err != nil {
			return diffLoadedMsg{err: err}
		}
		return diffLoadedMsg{files: diffview.Parse(raw)}
	}
}

// sendCommentsCmd delivers a payload formatted on the update loop. The
// goroutine only carries the snapshot pointers back for MarkSent and
// never reads their fields, so concurrent edits cannot race the send.
func (m Model) sendCommentsCmd(payload string, delivered []*comments.Comment) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		return sentMsg{delivered: delivered, err: sender.Send(context.Background(), payload)}
	}
}
