package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vision-hud/config"
	"vision-hud/internal/logger"
)

// Version версия приложения
const Version = "0.1.0"

var (
	// cfg загружается в PersistentPreRunE и общий для всех подкоманд
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "vision-hud",
	Short:         "Edge-detection overlay for a HUD frame",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// флаг важнее переменной окружения
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger.SetLevel(cfg.LogLevel)
		return nil
	},
}

// Execute запускает корневую команду с контекстом, отменяемым по SIGINT/SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: LOG_LEVEL or info)")
}
