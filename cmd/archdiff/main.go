package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"archdiff/internal/app"
	"archdiff/internal/config"
	"archdiff/internal/git"
)

func main() {
	var (
		repoPath   string
		logLevel   string
		logFile    string
		configPath string
		logCloser  func()
	)

	cmd := &cli.Command{
		Name:  "archdiff",
		Usage: "Review working-tree changes and send line comments to your agent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "repository path (defaults to the current directory)",
				Destination: &repoPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("ARCHDIFF_LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <config-dir>/archdiff.log)",
				Sources:     cli.EnvVars("ARCHDIFF_LOG_FILE"),
				Destination: &logFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ARCHDIFF_CONFIG"),
				Destination: &configPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Log to a file; the terminal belongs to the TUI.
			logger, closer, err := newLogger(logLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			cwd := repoPath
			if cwd == "" {
				if cwd, err = os.Getwd(); err != nil {
					return err
				}
			}
			root, err := git.DiscoverRepoRoot(ctx, cwd)
			if err != nil {
				return fmt.Errorf("not inside a git repository: %w", err)
			}

			model := app.NewModel(root, cfg, log.Logger)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("application error: %w", err)
			}
			return nil
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if logCloser != nil {
		logCloser()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "archdiff: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, _, err := config.Load()
	return cfg, err
}

func newLogger(level, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == "" {
		dir, err := config.DefaultPath()
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		file = filepath.Join(filepath.Dir(dir), "archdiff.log")
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(file)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = f.Close() }

	logger := zerolog.New(f).With().Timestamp().Logger().Level(lvl)
	return logger, closer, nil
}
