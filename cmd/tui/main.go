// Command tui is a terminal client for the todos server.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezkam/todos/internal/client"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logFile, err := initLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	api, err := client.New(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	slog.Info("Starting terminal client", "server", cfg.ServerURL, "debounce", cfg.Debounce)

	model := tui.NewAppModel(api, tui.Options{
		Debounce:       cfg.Debounce,
		RequestTimeout: cfg.RequestTimeout,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadConfig layers flags over the config file and environment.
func loadConfig(args []string) (*config.TUIConfig, error) {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultTUIConfigPath(), "path to the TOML config file")
	serverURL := fs.String("server", "", "todos server URL (overrides config)")
	debounce := fs.Duration("debounce", 0, "search debounce period (overrides config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadTUIConfig(*configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.ServerURL = *serverURL
		case "debounce":
			cfg.Debounce = *debounce
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogging sends slog output to path. The terminal belongs to the UI.
func initLogging(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler).With("pid", os.Getpid()))
	return file, nil
}
