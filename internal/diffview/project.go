package diffview

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the fixed tab-stop width used when expanding tabs
// for display-column measurement.
const DefaultTabWidth = 4

// Projector flattens the file/hunk/line model into display rows for a
// given wrap width. Width is in display columns; 0 means unlimited.
type Projector struct {
	Width    int
	TabWidth int
}

func NewProjector(width int) Projector {
	return Projector{Width: width, TabWidth: DefaultTabWidth}
}

// Project emits one FileHeaderRow per file, and for expanded files one
// HunkHeaderRow per hunk followed by the wrap slices of every line.
// Collapsed files contribute only their header row.
func (p Projector) Project(files []*DiffFile) []DisplayRow {
	rows := make([]DisplayRow, 0, 64)
	for _, f := range files {
		rows = append(rows, FileHeaderRow{File: f})
		if f.Collapsed {
			continue
		}
		for _, h := range f.Hunks {
			rows = append(rows, HunkHeaderRow{File: f, Hunk: h})
			for i := range h.Lines {
				line := &h.Lines[i]
				for _, s := range p.sliceLine(line.Text) {
					rows = append(rows, DiffLineRow{
						File:       f,
						Hunk:       h,
						Line:       line,
						ByteOffset: s.offset,
						Text:       s.text,
					})
				}
			}
		}
	}
	return rows
}

type wrapSlice struct {
	offset int
	text   string
}

// sliceLine greedily cuts text into successive byte ranges, each at
// most Width display columns wide, splitting only at UTF-8 code-point
// boundaries. A single unit wider than Width occupies a slice of its
// own rather than being split. Width 0 disables wrapping.
func (p Projector) sliceLine(text string) []wrapSlice {
	if p.Width <= 0 || p.displayWidth(text) <= p.Width {
		return []wrapSlice{{offset: 0, text: text}}
	}

	slices := make([]wrapSlice, 0, 2)
	start := 0
	cols := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		w := p.runeWidth(r)
		if cols+w > p.Width && i > start {
			slices = append(slices, wrapSlice{offset: start, text: text[start:i]})
			start = i
			cols = 0
		}
		cols += w
		i += size
	}
	slices = append(slices, wrapSlice{offset: start, text: text[start:]})
	return slices
}

func (p Projector) displayWidth(text string) int {
	cols := 0
	for _, r := range text {
		cols += p.runeWidth(r)
	}
	return cols
}

// runeWidth is the display-column contribution of one rune: tabs take a
// fixed tab stop, non-printable bytes contribute nothing.
func (p Projector) runeWidth(r rune) int {
	if r == '\t' {
		if p.TabWidth > 0 {
			return p.TabWidth
		}
		return DefaultTabWidth
	}
	return runewidth.RuneWidth(r)
}
