package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/api"
	"github.com/cbmo4ers/coinpulse/internal/config"
	"github.com/cbmo4ers/coinpulse/internal/feed"
	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/ui"
)

// dashboardAction loads configuration, wires the API client, feeds and
// poller together, and runs the dashboard until the user quits.
func dashboardAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	client, err := api.NewClient(cfg.BaseURL, cfg.MinBackendVersion, cfg.RequestTimeout(), log)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	poller := feed.NewPoller(cfg.RefreshInterval())

	model := ui.NewModel(cfg, client, poller, log)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// The poller broadcasts into the Bubble Tea event loop; the model
	// reacts to the messages like any other input.
	poller.Subscribe(func(e feed.Event) {
		switch e.Type {
		case feed.EventCountdown:
			program.Send(ui.CountdownMsg{Remaining: e.Remaining})
		case feed.EventRefresh:
			program.Send(ui.RefreshMsg{Remaining: e.Remaining})
		}
	})

	poller.Start()
	defer poller.Stop()

	log.Info("starting dashboard",
		zap.String("base_url", cfg.BaseURL),
		zap.Int("refresh_seconds", cfg.RefreshSeconds))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}

	return nil
}

// loadConfig resolves the effective configuration: defaults, then an
// optional config file, then explicit command line flags on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)

	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if baseURL := cmd.String("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if cmd.IsSet("refresh") {
		cfg.RefreshSeconds = int(cmd.Int("refresh"))
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newLogger(verbose bool) (*logger.Logger, error) {
	if verbose {
		return logger.NewDebugLogger()
	}

	return logger.NewLogger()
}

func main() {
	cmd := &cli.Command{
		Name:  "coinpulse",
		Usage: "Terminal dashboard for crypto gainers, losers and volume movers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Aliases: []string{"u"},
				Usage:   "Backend API base URL (overrides config and COINPULSE_API_URL)",
			},
			&cli.IntFlag{
				Name:    "refresh",
				Aliases: []string{"r"},
				Usage:   "Seconds between automatic refreshes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: dashboardAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
