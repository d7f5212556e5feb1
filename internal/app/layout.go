package app

import "archdiff/internal/diffview"

// chromeHeight is the vertical space taken by the header and footer
// lines around the viewport.
const chromeHeight = 2

// wrapWidth converts the viewport content width into the wrap width
// handed to the projector: the render prefix is 3 columns
// (cursor + comment marker + space) and the gutter is two line-number
// columns, a separator, and a 2-column diff marker.
func wrapWidth(viewWidth, maxLineNum int) int {
	numW := digits(maxLineNum)
	if numW < 3 {
		numW = 3
	}
	overhead := 3 + 2*numW + 2 + 2
	w := viewWidth - overhead
	if w < 1 {
		// Below this there is no useful wrapping; fall back to
		// unlimited and let the renderer truncate.
		return 0
	}
	return w
}

// maxLineNumber is the largest old or new line number the model can
// display, used to size the gutter before projecting.
func maxLineNumber(files []*diffview.DiffFile) int {
	maxLn := 0
	for _, f := range files {
		for _, h := range f.Hunks {
			for _, l := range h.Lines {
				if l.OldLine != nil && *l.OldLine > maxLn {
					maxLn = *l.OldLine
				}
				if l.NewLine != nil && *l.NewLine > maxLn {
					maxLn = *l.NewLine
				}
			}
		}
	}
	return maxLn
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
