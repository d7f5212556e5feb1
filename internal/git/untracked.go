package git

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// binarySniffLen is how far into a file we look for a NUL byte
	// before declaring it binary.
	binarySniffLen = 8 * 1024

	// maxUntrackedFileBytes caps the size of an untracked file we will
	// inline into the synthesized diff.
	maxUntrackedFileBytes = 512 * 1024
)

// SynthesizeUntracked produces unified-diff text for untracked files so
// they flow through the same parser as tracked changes. Binary and
// oversized files get a one-line placeholder hunk; unreadable files are
// skipped.
func SynthesizeUntracked(root string, paths []string) string {
	var sb strings.Builder
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(root, p))
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "diff --git a/%s b/%s\n", p, p)
		sb.WriteString("new file\n")
		sb.WriteString("--- /dev/null\n")
		fmt.Fprintf(&sb, "+++ b/%s\n", p)

		switch {
		case len(data) > maxUntrackedFileBytes:
			sb.WriteString("@@ -0,0 +1 @@\n")
			fmt.Fprintf(&sb, "+(file too large to display: %d bytes)\n", len(data))
		case isBinary(data):
			sb.WriteString("@@ -0,0 +1 @@\n")
			sb.WriteString("+(binary file)\n")
		default:
			lines := splitFileLines(data)
			fmt.Fprintf(&sb, "@@ -0,0 +1,%d @@\n", len(lines))
			for _, line := range lines {
				sb.WriteString("+")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}

func splitFileLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
