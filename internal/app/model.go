package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"archdiff/internal/agent"
	"archdiff/internal/comments"
	"archdiff/internal/config"
	"archdiff/internal/diffview"
	"archdiff/internal/git"
	"archdiff/internal/notify"
)

// Model drives the review overlay. All state flows through one
// explicit pipeline: acquire -> parse -> project -> resolve comment
// positions -> render. Nothing reads a comment's row index before the
// resolve step has run against the current projection.
type Model struct {
	keys     KeyMap
	cfg      config.AppConfig
	log      zerolog.Logger
	repoRoot string

	acquirer git.Acquirer
	overlay  *comments.Overlay
	sender   agent.Sender
	notifier *notify.Notifier
	hl       *diffview.Highlighter

	width  int
	height int
	ready  bool

	files   []*diffview.DiffFile
	rows    []diffview.DisplayRow
	loadErr error
	cursor  int
	view    viewport.Model

	// commentHeights[i] is the rendered height of the comment box
	// anchored under row i, 0 when none. Rebuilt with the content.
	commentHeights []int

	commentInput  textinput.Model
	commentActive bool
	commentTarget int

	helpOpen   bool
	loading    bool
	sending    bool
	alertMsg   string
	alertUntil time.Time
}

func NewModel(repoRoot string, cfg config.AppConfig, log zerolog.Logger) Model {
	store := comments.NewStore(repoRoot, log)

	acquirer := git.NewAcquirer(repoRoot, log)
	if cfg.ContextLines > 0 {
		acquirer.Context = cfg.ContextLines
	}
	if cfg.MaxDiffBytes > 0 {
		acquirer.MaxBytes = cfg.MaxDiffBytes
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Type comment"
	input.CharLimit = 4096
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	m := Model{
		keys:         defaultKeyMap(),
		cfg:          cfg,
		log:          log,
		repoRoot:     repoRoot,
		acquirer:     acquirer,
		overlay:      comments.NewOverlay(store, log),
		sender:       agent.Sender{Cwd: repoRoot, Command: cfg.AgentCommand, Log: log},
		commentInput: input,
		loading:      true,
	}
	if cfg.Highlight {
		m.hl = diffview.NewHighlighter(cfg.Theme)
	}
	if n, ok := notify.FromEnv(); ok {
		m.notifier = &n
	}
	m.view = viewport.New(1, 1)
	return m
}

func (m Model) Init() tea.Cmd {
	m.notifyState(notify.StateStart)
	return tea.Batch(m.loadDiffCmd(), alertTickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view.Width = max(1, m.width)
		m.view.Height = max(1, m.height-chromeHeight)
		m.rebuild()
		return m, nil

	case diffLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		m.files = msg.files
		m.cursor = 0
		m.overlay.Load()
		m.rebuild()
		m.ensureCursorVisible()
		return m, nil

	case sentMsg:
		m.sending = false
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("send failed: %v", msg.err))
			return m, nil
		}
		m.overlay.MarkSent(msg.delivered)
		m.notifyState(notify.StateDone)
		m.setAlert(fmt.Sprintf("sent %d comment(s) to agent", len(msg.delivered)))
		m.refreshContent()
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.refreshContent()
		}
		return m, alertTickCmd()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.commentActive {
			return m.updateCommentInput(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.overlay.Persist()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.afterCursorMove()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
		m.afterCursorMove()
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.view.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.view.Height)

	case key.Matches(msg, m.keys.ToggleFold):
		if f := m.fileAtCursor(); f != nil {
			f.Collapsed = !f.Collapsed
			m.rebuild()
			m.moveCursorToFileHeader(f)
		}
	case key.Matches(msg, m.keys.FoldAll):
		m.setAllFolds(true)
	case key.Matches(msg, m.keys.ExpandAll):
		m.setAllFolds(false)

	case key.Matches(msg, m.keys.Comment):
		m.startCommentInput()
	case key.Matches(msg, m.keys.Delete):
		m.deleteCommentAtCursor()

	case key.Matches(msg, m.keys.Send):
		return m.startSend()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadDiffCmd()
	}
	return m, nil
}

// handleMouse maps a left click through the row layout: a row click
// moves the cursor there, a click inside a comment box opens it for
// editing. The header occupies the top screen line, so content
// coordinates start one line down.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.commentActive || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	contentY := msg.Y - 1 + m.view.YOffset
	kind, idx := diffview.ResolveY(contentY, len(m.rows), 1, m.commentHeight)
	switch kind {
	case diffview.HitRow:
		m.cursor = idx
		m.afterCursorMove()
	case diffview.HitComment:
		m.cursor = idx
		m.afterCursorMove()
		m.startCommentInput()
	}
	return m, nil
}

func (m Model) updateCommentInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commentActive = false
		m.commentInput.SetValue("")
		m.commentInput.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.commentInput.Value())
		m.commentActive = false
		m.commentInput.SetValue("")
		m.commentInput.Blur()
		if text != "" {
			if err := m.overlay.AddOrUpdate(m.rows, m.commentTarget, text); err != nil {
				m.setAlert(err.Error())
			}
			m.overlay.ResolvePositions(m.rows)
			m.refreshContent()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

// rebuild re-projects the model at the current width and immediately
// re-resolves comment positions; the two must never be observed out of
// step.
func (m *Model) rebuild() {
	if m.loadErr != nil {
		m.rows = []diffview.DisplayRow{diffview.MessageRow{Text: fmt.Sprintf("cannot load diff: %v", m.loadErr)}}
	} else if len(m.files) == 0 && !m.loading {
		m.rows = []diffview.DisplayRow{diffview.MessageRow{Text: "working tree is clean"}}
	} else {
		proj := diffview.Projector{Width: m.wrapWidth(), TabWidth: m.cfg.TabWidth}
		m.rows = proj.Project(m.files)
	}
	m.overlay.ResolvePositions(m.rows)
	m.clampCursor()
	m.refreshContent()
}

func (m *Model) wrapWidth() int {
	if !m.ready {
		return 0
	}
	return wrapWidth(m.view.Width, maxLineNumber(m.files))
}

func (m *Model) startCommentInput() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	if _, ok := m.rows[m.cursor].(diffview.DiffLineRow); !ok {
		m.setAlert("comments attach to diff lines")
		return
	}
	m.commentTarget = m.cursor
	if c, _, ok := m.overlay.CommentAtRow(m.finalWrapRowIndex(m.cursor)); ok {
		m.commentInput.SetValue(c.Text)
	}
	m.commentActive = true
	m.commentInput.Focus()
}

func (m *Model) deleteCommentAtCursor() {
	if _, idx, ok := m.overlay.CommentAtRow(m.finalWrapRowIndex(m.cursor)); ok {
		m.overlay.Remove(idx)
		m.overlay.ResolvePositions(m.rows)
		m.refreshContent()
		return
	}
	m.setAlert("no comment on this line")
}

func (m Model) startSend() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	unsent := m.overlay.Unsent()
	if len(unsent) == 0 {
		m.setAlert("no comments to send")
		return m, nil
	}
	m.sending = true
	m.notifyState(notify.StateAwaitingApproval)
	// Format here, before the send goroutine exists; the payload is the
	// delivery of record even if a comment is edited mid-flight.
	payload := comments.FormatForAgent(unsent)
	return m, m.sendCommentsCmd(payload, unsent)
}

func (m *Model) setAllFolds(collapsed bool) {
	for _, f := range m.files {
		f.Collapsed = collapsed
	}
	m.rebuild()
}

func (m *Model) fileAtCursor() *diffview.DiffFile {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	switch r := m.rows[m.cursor].(type) {
	case diffview.FileHeaderRow:
		return r.File
	case diffview.HunkHeaderRow:
		return r.File
	case diffview.DiffLineRow:
		return r.File
	}
	return nil
}

func (m *Model) moveCursorToFileHeader(f *diffview.DiffFile) {
	for i, r := range m.rows {
		if h, ok := r.(diffview.FileHeaderRow); ok && h.File == f {
			m.cursor = i
			m.afterCursorMove()
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.afterCursorMove()
}

func (m *Model) afterCursorMove() {
	m.clampCursor()
	m.refreshContent()
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// finalWrapRowIndex maps any wrap slice to the final slice of its
// logical line, the row comments anchor to.
func (m *Model) finalWrapRowIndex(row int) int {
	i := row
	for i+1 < len(m.rows) && diffview.SameLogicalLine(m.rows[row], m.rows[i+1]) {
		i++
	}
	return i
}

func (m *Model) commentHeight(row int) int {
	if row < 0 || row >= len(m.commentHeights) {
		return 0
	}
	return m.commentHeights[row]
}

func (m *Model) ensureCursorVisible() {
	top := diffview.RowTop(m.cursor, 1, m.commentHeight)
	bottom := top + 1 + m.commentHeight(m.cursor)
	if top < m.view.YOffset {
		m.view.SetYOffset(top)
	} else if bottom > m.view.YOffset+m.view.Height {
		m.view.SetYOffset(bottom - m.view.Height)
	}
}

func (m *Model) setAlert(text string) {
	m.alertMsg = text
	m.alertUntil = time.Now().Add(4 * time.Second)
	m.refreshContent()
}

func (m *Model) notifyState(state notify.State) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Send(state); err != nil {
		m.log.Debug().Err(err).Str("state", string(state)).Msg("notify architect")
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
