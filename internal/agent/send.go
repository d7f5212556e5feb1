package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"archdiff/internal/util"
)

// Sender hands review comments to an external collaborator process.
// The payload goes on stdin; the process is whatever command the user
// configured (typically their coding agent).
type Sender struct {
	Cwd     string
	Command string
	Log     zerolog.Logger
}

// Send pipes a preformatted payload to the configured command. The
// caller formats the payload before handing it over, so Send can run
// on a goroutine without touching shared comment state.
func (s Sender) Send(ctx context.Context, payload string) error {
	if strings.TrimSpace(s.Command) == "" {
		return fmt.Errorf("no agent command configured")
	}
	if payload == "" {
		return fmt.Errorf("no unsent comments")
	}

	s.Log.Info().Str("command", s.Command).Msg("sending review comments to agent")
	_, err := util.RunWithStdin(ctx, s.Cwd, payload, "sh", "-c", s.Command)
	if err != nil {
		return fmt.Errorf("send to agent: %w", err)
	}
	return nil
}
