package git

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"archdiff/internal/util"
)

// DefaultMaxDiffBytes bounds acquired diff text. Exceeding it aborts
// the whole acquisition; the caller substitutes a message row instead
// of a partially parsed model.
const DefaultMaxDiffBytes = 4 << 20

// Acquirer obtains the complete diff text for a repo: unstaged changes,
// staged changes, then synthesized diffs for untracked files. The
// result is an opaque byte buffer handed to the parser whole; partial
// output is never observed.
type Acquirer struct {
	Cwd      string
	Context  int
	MaxBytes int
	Log      zerolog.Logger
}

func NewAcquirer(cwd string, log zerolog.Logger) Acquirer {
	return Acquirer{Cwd: cwd, Context: 3, MaxBytes: DefaultMaxDiffBytes, Log: log}
}

// Acquire runs the two diff passes and the untracked synthesis,
// concatenated with blank-line separators.
func (a Acquirer) Acquire(ctx context.Context) ([]byte, error) {
	unified := fmt.Sprintf("--unified=%d", a.Context)
	unstaged, err := util.Run(ctx, a.Cwd, "git", "diff", unified, "--no-color")
	if err != nil {
		return nil, fmt.Errorf("diff worktree: %w", err)
	}
	staged, err := util.Run(ctx, a.Cwd, "git", "diff", "--cached", unified, "--no-color")
	if err != nil {
		return nil, fmt.Errorf("diff staged: %w", err)
	}

	untrackedPaths, err := ListUntracked(ctx, a.Cwd)
	if err != nil {
		// Untracked synthesis is additive; a status failure should not
		// cost the tracked diff.
		a.Log.Warn().Err(err).Msg("list untracked files")
		untrackedPaths = nil
	}
	untracked := SynthesizeUntracked(a.Cwd, untrackedPaths)

	buf := make([]byte, 0, len(unstaged)+len(staged)+len(untracked)+2)
	for _, part := range []string{unstaged, staged, untracked} {
		if part == "" {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, part...)
	}

	max := a.MaxBytes
	if max <= 0 {
		max = DefaultMaxDiffBytes
	}
	if len(buf) > max {
		return nil, fmt.Errorf("diff output is %d bytes, over the %d byte ceiling", len(buf), max)
	}
	return buf, nil
}
