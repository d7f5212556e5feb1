package comments

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// storedComment is the on-disk shape: a flat JSON array of
// {"file": string, "line": integer, "text": string} objects.
type storedComment struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Store persists comments under <repoRoot>/.architect/diff_comments.json.
// Writes are full-file overwrites; the content is advisory, so there is
// no atomic rename.
type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(repoRoot string, log zerolog.Logger) Store {
	return Store{
		path: filepath.Join(repoRoot, ".architect", "diff_comments.json"),
		log:  log,
	}
}

// Load reads the persisted comments. Loading is permissive: a missing
// or unreadable file yields an empty list, unknown keys are ignored and
// individually malformed entries are skipped rather than aborting the
// whole file.
func (s Store) Load() []*Comment {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("read diff comments")
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("parse diff comments")
		return nil
	}

	out := make([]*Comment, 0, len(raw))
	for _, entry := range raw {
		var sc storedComment
		if err := json.Unmarshal(entry, &sc); err != nil {
			s.log.Debug().Err(err).Msg("skip malformed comment entry")
			continue
		}
		if sc.File == "" || sc.Line <= 0 {
			continue
		}
		out = append(out, &Comment{
			Key:      Key{File: sc.File, Line: sc.Line},
			Text:     sc.Text,
			RowIndex: -1,
		})
	}
	return out
}

// Save overwrites the store with the given comments.
func (s Store) Save(comments []*Comment) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	stored := make([]storedComment, 0, len(comments))
	for _, c := range comments {
		stored = append(stored, storedComment{File: c.File, Line: c.Line, Text: c.Text})
	}
	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}
