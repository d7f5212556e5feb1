package diffview

// LineKind classifies one line of a hunk body.
type LineKind int

const (
	LineContext LineKind = iota // present in both sides
	LineAdd                     // present only in the new side
	LineRemove                  // present only in the old side
)

// DiffLine is one parsed hunk body line. OldLine is set for context and
// remove lines, NewLine for context and add lines.
type DiffLine struct {
	Kind    LineKind
	Text    string
	OldLine *int
	NewLine *int
}

// DiffHunk is one @@-delimited block of a file diff.
type DiffHunk struct {
	Header   string
	OldStart int
	NewStart int
	Lines    []DiffLine
}

// DiffFile is one file section of a unified diff. Collapsed hides the
// file's hunks in the projection while its header row stays visible as
// the fold handle.
type DiffFile struct {
	Path      string
	Collapsed bool
	Hunks     []*DiffHunk
}

func linePtr(n int) *int {
	v := n
	return &v
}
