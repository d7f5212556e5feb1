package git

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"archdiff/internal/util"
)

// ListUntracked returns the repo-relative paths of untracked files,
// sorted. These feed the untracked-diff synthesizer since git diff
// never reports them.
func ListUntracked(ctx context.Context, cwd string) ([]string, error) {
	out, err := util.Run(ctx, cwd, "git", "status", "--porcelain=v2", "--untracked-files=all", "-z")
	if err != nil {
		return nil, err
	}

	paths := parseUntrackedZ([]byte(out))
	sort.Strings(paths)
	return paths, nil
}

// parseUntrackedZ pulls '?' records out of porcelain v2 -z output.
// Rename/copy records carry an extra NUL-separated origin path, which
// is skipped so it cannot be mistaken for a record.
func parseUntrackedZ(data []byte) []string {
	records := bytes.Split(data, []byte{0})
	var paths []string

	for i := 0; i < len(records); i++ {
		rec := string(records[i])
		if rec == "" {
			continue
		}
		switch rec[0] {
		case '?':
			paths = append(paths, strings.TrimPrefix(rec, "? "))
		case '2':
			i++ // consume the origin-path record of a rename/copy entry
		}
	}
	return paths
}
