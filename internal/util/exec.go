package util

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Run executes name with args in cwd and returns combined output.
// Failures wrap the command line and trimmed output so log lines stay
// actionable.
func Run(ctx context.Context, cwd, name string, args ...string) (string, error) {
	return run(ctx, cwd, "", name, args...)
}

// RunWithStdin is Run with the given string supplied on stdin.
func RunWithStdin(ctx context.Context, cwd, stdin, name string, args ...string) (string, error) {
	return run(ctx, cwd, stdin, name, args...)
}

func run(ctx context.Context, cwd, stdin, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
