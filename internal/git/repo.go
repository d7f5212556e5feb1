package git

import (
	"context"
	"strings"

	"archdiff/internal/util"
)

// DiscoverRepoRoot resolves the working-tree root for cwd.
func DiscoverRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := util.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
