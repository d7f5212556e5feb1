package comments

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripPreservesAwkwardText(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, zerolog.Nop())

	in := []*Comment{
		{Key: Key{File: "a.go", Line: 3}, Text: `quotes " and \ backslashes`},
		{Key: Key{File: "b.go", Line: 9}, Text: "newlines\nand\ttabs\x01ctrl"},
		{Key: Key{File: "dir/c.go", Line: 1}, Text: "ünïcode 日本語"},
	}
	require.NoError(t, store.Save(in))

	out := store.Load()
	require.Len(t, out, len(in))
	for i := range in {
		require.Equal(t, in[i].Key, out[i].Key)
		require.Equal(t, in[i].Text, out[i].Text)
		require.Equal(t, -1, out[i].RowIndex, "row index is transient, never persisted")
		require.False(t, out[i].Sent)
	}
}

func TestStoreWritesExpectedShape(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, zerolog.Nop())
	require.NoError(t, store.Save([]*Comment{{Key: Key{File: "a.go", Line: 7}, Text: "hi"}}))

	b, err := os.ReadFile(filepath.Join(root, ".architect", "diff_comments.json"))
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	require.Len(t, generic, 1)
	require.Equal(t, "a.go", generic[0]["file"])
	require.Equal(t, float64(7), generic[0]["line"])
	require.Equal(t, "hi", generic[0]["text"])
	require.Len(t, generic[0], 3, "no transient fields on disk")
}

func TestStoreLoadSkipsMalformedEntries(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".architect")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw := `[
		{"file": "good.go", "line": 2, "text": "kept", "unknown_key": true},
		{"file": "", "line": 5, "text": "missing file"},
		{"file": "bad.go", "line": "not a number", "text": "bad line"},
		"not even an object",
		{"file": "also-good.go", "line": 8, "text": "kept too"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "diff_comments.json"), []byte(raw), 0o644))

	out := NewStore(root, zerolog.Nop()).Load()
	require.Len(t, out, 2)
	require.Equal(t, "good.go", out[0].File)
	require.Equal(t, "also-good.go", out[1].File)
}

func TestStoreLoadMissingFileYieldsEmpty(t *testing.T) {
	out := NewStore(t.TempDir(), zerolog.Nop()).Load()
	require.Empty(t, out)
}

func TestStoreLoadUnparsableFileYieldsEmpty(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".architect")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "diff_comments.json"), []byte("{ truncated"), 0o644))

	out := NewStore(root, zerolog.Nop()).Load()
	require.Empty(t, out)
}
