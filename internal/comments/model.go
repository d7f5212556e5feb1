package comments

import "archdiff/internal/diffview"

// Key identifies the logical line a comment is anchored to. Identity is
// positional: the new-side number for add and context lines, the
// old-side number for remove-only lines.
type Key struct {
	File string
	Line int
}

// Comment is one review comment. RowIndex is the comment's position in
// the current projection, recomputed by ResolvePositions after every
// rebuild and never persisted; -1 means the line is not currently
// visible. Sent comments are frozen: excluded from persistence and from
// future anchoring.
type Comment struct {
	Key
	Text     string
	Sent     bool
	RowIndex int
}

// KeyForLine derives the anchor key for a diff line, reporting false
// when the line carries no usable number.
func KeyForLine(file string, line *diffview.DiffLine) (Key, bool) {
	n, ok := anchorNumber(line)
	if !ok {
		return Key{}, false
	}
	return Key{File: file, Line: n}, true
}

// anchorNumber picks the side a comment keys on: new for add/context,
// old for remove.
func anchorNumber(line *diffview.DiffLine) (int, bool) {
	if line == nil {
		return 0, false
	}
	if line.Kind == diffview.LineRemove {
		if line.OldLine == nil {
			return 0, false
		}
		return *line.OldLine, true
	}
	if line.NewLine == nil {
		return 0, false
	}
	return *line.NewLine, true
}
