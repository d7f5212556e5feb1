package comments

import (
	"fmt"
	"strings"
)

// FormatForAgent renders comments as "<file>:<line>: <text>" blocks
// separated by a blank line, with a trailing newline. This is the
// outbound payload handed to the collaborator process.
func FormatForAgent(comments []*Comment) string {
	if len(comments) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(comments))
	for _, c := range comments {
		blocks = append(blocks, fmt.Sprintf("%s:%d: %s", c.File, c.Line, c.Text))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
