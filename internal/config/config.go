package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "archdiff"
	configFileName = "config.json"
)

// AppConfig holds the user-tunable knobs of the review overlay.
type AppConfig struct {
	// TabWidth is the fixed tab-stop width used for wrapping and
	// rendering.
	TabWidth int `json:"tab_width"`
	// ContextLines is the unified-diff context passed to git diff.
	ContextLines int `json:"context_lines"`
	// AgentCommand is the shell command unsent comments are piped to.
	AgentCommand string `json:"agent_command"`
	// MaxDiffBytes overrides the acquisition byte ceiling; 0 keeps the
	// built-in default.
	MaxDiffBytes int `json:"max_diff_bytes"`
	// Theme names the chroma style used for syntax highlighting.
	Theme string `json:"theme"`
	// Highlight toggles syntax highlighting of diff lines.
	Highlight bool `json:"highlight"`
}

func defaults() AppConfig {
	return AppConfig{
		TabWidth:     4,
		ContextLines: 3,
		Theme:        "monokai",
		Highlight:    true,
	}
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads the config file, filling defaults for a missing or
// empty file. A present but unparsable file is an error; silently
// dropping a user's settings would be worse than failing.
func LoadFromPath(path string) (AppConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TabWidth <= 0 {
		return AppConfig{}, fmt.Errorf("tab_width must be positive, got %d", cfg.TabWidth)
	}
	if cfg.ContextLines < 0 {
		return AppConfig{}, fmt.Errorf("context_lines cannot be negative")
	}
	if cfg.MaxDiffBytes < 0 {
		return AppConfig{}, fmt.Errorf("max_diff_bytes cannot be negative")
	}
	return cfg, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
