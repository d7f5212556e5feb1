package diffview

// HitKind classifies what a vertical offset resolves to.
type HitKind int

const (
	HitNone    HitKind = iota
	HitRow             // inside the row's own span
	HitComment         // inside the comment box anchored below the row
)

// ResolveY maps a pixel offset relative to the content top onto the row
// list. Each row occupies rowHeight pixels followed by the height of
// any comment box anchored to it. commentHeight may be nil when no
// comments are displayed. Linear in the row count, which is fine at the
// once-per-pointer-event rate this runs at.
func ResolveY(y, rowCount, rowHeight int, commentHeight func(row int) int) (HitKind, int) {
	if y < 0 || rowHeight <= 0 {
		return HitNone, -1
	}
	top := 0
	for i := 0; i < rowCount; i++ {
		if y < top+rowHeight {
			return HitRow, i
		}
		top += rowHeight
		if commentHeight != nil {
			ch := commentHeight(i)
			if y < top+ch {
				return HitComment, i
			}
			top += ch
		}
	}
	return HitNone, -1
}

// RowTop inverts ResolveY: the pixel offset of row index from the
// content top, accumulating earlier rows and their comment boxes. Used
// to scroll a target into view and to place in-box controls.
func RowTop(index, rowHeight int, commentHeight func(row int) int) int {
	top := 0
	for i := 0; i < index; i++ {
		top += rowHeight
		if commentHeight != nil {
			top += commentHeight(i)
		}
	}
	return top
}
