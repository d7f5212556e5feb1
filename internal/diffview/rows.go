package diffview

// DisplayRow is one renderable unit of the projection. It is a sealed
// variant: FileHeaderRow, HunkHeaderRow, DiffLineRow or MessageRow.
type DisplayRow interface {
	displayRow()
}

// FileHeaderRow marks the start of a file section and doubles as the
// fold handle when the file is collapsed.
type FileHeaderRow struct {
	File *DiffFile
}

// HunkHeaderRow shows the @@ header of a hunk.
type HunkHeaderRow struct {
	File *DiffFile
	Hunk *DiffHunk
}

// DiffLineRow is one wrap slice of a logical diff line. Rows sharing
// (File, Hunk, Line) with increasing ByteOffset are continuations of
// one logical line; concatenating their Text in order reconstructs the
// original line exactly.
type DiffLineRow struct {
	File       *DiffFile
	Hunk       *DiffHunk
	Line       *DiffLine
	ByteOffset int
	Text       string
}

// MessageRow carries a standalone status or error message.
type MessageRow struct {
	Text string
}

func (FileHeaderRow) displayRow() {}
func (HunkHeaderRow) displayRow() {}
func (DiffLineRow) displayRow()   {}
func (MessageRow) displayRow()    {}

// SameLogicalLine reports whether two rows are wrap slices of the same
// diff line.
func SameLogicalLine(a, b DisplayRow) bool {
	ra, ok := a.(DiffLineRow)
	if !ok {
		return false
	}
	rb, ok := b.(DiffLineRow)
	if !ok {
		return false
	}
	return ra.File == rb.File && ra.Hunk == rb.Hunk && ra.Line == rb.Line
}
