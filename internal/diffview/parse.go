package diffview

import "strings"

// metadataPrefixes are per-file header lines emitted by git between the
// "diff --git" line and the first hunk. They carry no hunk content and
// are skipped unconditionally.
var metadataPrefixes = []string{
	"index ",
	"--- ",
	"+++ ",
	"new file",
	"deleted file",
	"old mode",
	"new mode",
	"rename ",
	"copy ",
	"similarity ",
	"dissimilarity ",
	"mode ",
	"Binary files ",
}

// Parse converts raw unified-diff text into an ordered file/hunk/line
// model. Parsing is best-effort: malformed hunk headers default their
// start numbers to 0 and unrecognized lines are dropped, never
// reported. CR-terminated lines and a missing trailing newline are
// tolerated.
func Parse(raw []byte) []*DiffFile {
	var (
		files []*DiffFile
		file  *DiffFile
		hunk  *DiffHunk
	)

	oldLn, newLn := 0, 0

	lines := strings.Split(string(raw), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, "diff --git ") {
			file = &DiffFile{Path: filePathFromHeader(line)}
			files = append(files, file)
			hunk = nil
			continue
		}
		if file == nil {
			continue
		}
		if isMetadataLine(line) {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			oldStart, newStart := parseHunkStarts(line)
			hunk = &DiffHunk{Header: line, OldStart: oldStart, NewStart: newStart}
			file.Hunks = append(file.Hunks, hunk)
			oldLn, newLn = oldStart, newStart
			continue
		}
		if hunk == nil {
			continue
		}
		if line == "" {
			// Separator between concatenated diff streams; a real empty
			// context line arrives as a single space.
			continue
		}

		switch line[0] {
		case '+':
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineAdd,
				Text:    line[1:],
				NewLine: linePtr(newLn),
			})
			newLn++

		case '-':
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineRemove,
				Text:    line[1:],
				OldLine: linePtr(oldLn),
			})
			oldLn++

		case '\\':
			// "\ No newline at end of file" marker.

		case ' ':
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineContext,
				Text:    line[1:],
				OldLine: linePtr(oldLn),
				NewLine: linePtr(newLn),
			})
			oldLn++
			newLn++

		default:
			// Bare text without a diff prefix still counts as context.
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineContext,
				Text:    line,
				OldLine: linePtr(oldLn),
				NewLine: linePtr(newLn),
			})
			oldLn++
			newLn++
		}
	}

	return files
}

// filePathFromHeader extracts the b-side path from a "diff --git a/x b/x"
// line, falling back to the raw remainder when the delimiter is absent.
func filePathFromHeader(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	if idx := strings.Index(rest, " b/"); idx >= 0 {
		return rest[idx+len(" b/"):]
	}
	return rest
}

func isMetadataLine(line string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// parseHunkStarts pulls the old and new start numbers out of an @@
// header by scanning for "-<digits>" and "+<digits>". Either defaults
// to 0 when missing or malformed.
func parseHunkStarts(line string) (oldStart, newStart int) {
	oldStart = scanNumberAfter(line, '-')
	newStart = scanNumberAfter(line, '+')
	return oldStart, newStart
}

func scanNumberAfter(line string, marker byte) int {
	for i := 0; i < len(line); i++ {
		if line[i] != marker {
			continue
		}
		j := i + 1
		n := 0
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			n = n*10 + int(line[j]-'0')
			j++
		}
		if j > i+1 {
			return n
		}
	}
	return 0
}
