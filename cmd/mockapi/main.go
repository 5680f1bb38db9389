package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/mockapi"
)

// serveAction runs the mock backend until interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	seed := cmd.Int("seed")
	if !cmd.IsSet("seed") {
		seed = time.Now().UnixNano()
	}

	server := mockapi.NewServer(seed, log)
	if err := server.Start(cmd.String("listen")); err != nil {
		return fmt.Errorf("failed to start mock API: %w", err)
	}

	log.Info("mock API listening",
		zap.String("address", server.Address()),
		zap.String("version", mockapi.Version))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down mock API")

	return server.Stop()
}

func main() {
	cmd := &cli.Command{
		Name:  "mockapi",
		Usage: "Run a local mock backend with a simulated crypto market",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Address to listen on",
				Value:   ":5001",
			},
			&cli.IntFlag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "Random seed for the simulated market (default: current time)",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
