package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/units"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/doxxx/coap-cli/udp/client"
)

var (
	// Global flags
	timeout        time.Duration
	maxMessageSize string
	verbose        bool

	// Shared state set during PersistentPreRunE
	logger  *slog.Logger
	envCfg  transmissionEnv
	bufSize units.Base2Bytes
)

// rootCmd is the base command for coap-cli.
var rootCmd = &cobra.Command{
	Use:           "coap-cli",
	Short:         "A CoAP client for the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		// Load .env file
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables")
		}
		if err := env.Parse(&envCfg); err != nil {
			return fmt.Errorf("cannot parse environment: %w", err)
		}

		var err error
		bufSize, err = units.ParseBase2Bytes(maxMessageSize)
		if err != nil {
			return fmt.Errorf("cannot parse max message size: %w", err)
		}
		if bufSize < 16 {
			return fmt.Errorf("max message size %v is too small", bufSize)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Second, "base retransmission timeout")
	rootCmd.PersistentFlags().StringVar(&maxMessageSize, "max-message-size", "64KiB", "upper bound for encoded requests and the receive buffer")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and maps failures to exit codes.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		switch {
		case errors.Is(err, client.ErrTimeout):
			os.Exit(2)
		case errors.Is(err, client.ErrReset):
			os.Exit(3)
		default:
			os.Exit(1)
		}
	}
}
