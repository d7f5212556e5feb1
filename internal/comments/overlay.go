package comments

import (
	"fmt"

	"github.com/rs/zerolog"

	"archdiff/internal/diffview"
)

// Overlay owns the live comment list for one diff session. All
// operations are synchronous; the overlay is exclusively owned by the
// UI loop and never shared.
type Overlay struct {
	store Store
	log   zerolog.Logger
	items []*Comment
}

func NewOverlay(store Store, log zerolog.Logger) *Overlay {
	return &Overlay{store: store, log: log}
}

// Load replaces the in-memory list with the persisted one. Called once
// per diff load.
func (o *Overlay) Load() {
	o.items = o.store.Load()
}

// All returns the held comments in insertion order.
func (o *Overlay) All() []*Comment {
	return o.items
}

// Unsent returns the comments still eligible for anchoring and export.
func (o *Overlay) Unsent() []*Comment {
	out := make([]*Comment, 0, len(o.items))
	for _, c := range o.items {
		if !c.Sent {
			out = append(out, c)
		}
	}
	return out
}

// AddOrUpdate anchors text to the logical line of rows[target]. The
// target resolves to the final wrap row of its line before the key is
// derived, so one comment attaches per logical line regardless of wrap
// state. An existing live comment with the same key is updated in
// place.
func (o *Overlay) AddOrUpdate(rows []diffview.DisplayRow, target int, text string) error {
	if target < 0 || target >= len(rows) {
		return fmt.Errorf("row %d out of range", target)
	}
	row, _, ok := finalWrapRow(rows, target)
	if !ok {
		return fmt.Errorf("row %d is not a diff line", target)
	}
	key, ok := KeyForLine(row.File.Path, row.Line)
	if !ok {
		return fmt.Errorf("line has no anchorable number")
	}

	if c := o.findLive(key); c != nil {
		c.Text = text
	} else {
		o.items = append(o.items, &Comment{Key: key, Text: text, RowIndex: -1})
	}
	o.persist()
	return nil
}

// Remove deletes the comment at internal index i.
func (o *Overlay) Remove(i int) {
	if i < 0 || i >= len(o.items) {
		return
	}
	o.items = append(o.items[:i:i], o.items[i+1:]...)
	o.persist()
}

// ResolvePositions recomputes every unsent comment's row index against
// the current projection: the DiffLineRow whose file path and resolved
// line number match the key, at the maximal byte offset for that
// logical line. Comments whose line is gone keep index -1 but are
// retained. Must run after every rebuild before anything reads
// RowIndex.
func (o *Overlay) ResolvePositions(rows []diffview.DisplayRow) {
	for _, c := range o.items {
		if c.Sent {
			c.RowIndex = -1
			continue
		}
		c.RowIndex = -1
		for i, r := range rows {
			lr, ok := r.(diffview.DiffLineRow)
			if !ok || lr.File.Path != c.File {
				continue
			}
			n, ok := anchorNumber(lr.Line)
			if !ok || n != c.Line {
				continue
			}
			// Every later match overwrites: the scan ends on the final
			// wrap slice of the last line matching the key, so a key
			// anchored to an add line is not shadowed by a remove line
			// sharing the same old-side number.
			c.RowIndex = i
		}
	}
}

// MarkSent freezes the delivered comments: sent comments drop out of
// anchoring and out of the persisted file for good. Only the exact
// snapshot that went out is frozen; a comment added or edited while the
// delivery was in flight stays live.
func (o *Overlay) MarkSent(delivered []*Comment) {
	sent := make(map[*Comment]struct{}, len(delivered))
	for _, c := range delivered {
		sent[c] = struct{}{}
	}
	for _, c := range o.items {
		if _, ok := sent[c]; ok {
			c.Sent = true
			c.RowIndex = -1
		}
	}
	o.persist()
}

// CommentAtRow returns the live comment anchored to the given row
// index, if any.
func (o *Overlay) CommentAtRow(row int) (*Comment, int, bool) {
	for i, c := range o.items {
		if !c.Sent && c.RowIndex == row {
			return c, i, true
		}
	}
	return nil, -1, false
}

// Persist writes the unsent comments to disk. Also invoked by the app
// when the overlay is hidden.
func (o *Overlay) Persist() {
	o.persist()
}

func (o *Overlay) persist() {
	if err := o.store.Save(o.Unsent()); err != nil {
		o.log.Error().Err(err).Msg("persist diff comments")
	}
}

func (o *Overlay) findLive(key Key) *Comment {
	for _, c := range o.items {
		if !c.Sent && c.Key == key {
			return c
		}
	}
	return nil
}

// finalWrapRow walks forward from target to the last wrap slice of the
// same logical line, returning that row and its index.
func finalWrapRow(rows []diffview.DisplayRow, target int) (diffview.DiffLineRow, int, bool) {
	row, ok := rows[target].(diffview.DiffLineRow)
	if !ok {
		return diffview.DiffLineRow{}, -1, false
	}
	idx := target
	for i := target + 1; i < len(rows); i++ {
		next, ok := rows[i].(diffview.DiffLineRow)
		if !ok || !diffview.SameLogicalLine(rows[target], rows[i]) {
			break
		}
		row = next
		idx = i
	}
	return row, idx, true
}
