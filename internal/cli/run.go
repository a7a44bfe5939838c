package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	telegram "vision-hud/internal/api"
	"vision-hud/internal/container"
	"vision-hud/internal/logger"
	"vision-hud/internal/transport"
)

const shutdownTimeout = 10 * time.Second

var runOpts struct {
	source   string
	httpAddr string
	noBot    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the HUD loop with the background edge worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runOpts.source != "" {
			cfg.FrameSource = runOpts.source
		}
		if cmd.Flags().Changed("http") {
			cfg.HTTPAddr = runOpts.httpAddr
		}
		if runOpts.noBot {
			cfg.TelegramToken = ""
		}
		return runHUD(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOpts.source, "source", "s", "", "frame source: synthetic, camera:N or image path (default: FRAME_SOURCE)")
	runCmd.Flags().StringVar(&runOpts.httpAddr, "http", "", "HTTP status address, empty disables it (default: HTTP_ADDR)")
	runCmd.Flags().BoolVar(&runOpts.noBot, "no-bot", false, "do not start the Telegram bot even if TELEGRAM_TOKEN is set")
	rootCmd.AddCommand(runCmd)
}

// runHUD крутит HUD, HTTP-сервер и бота до отмены контекста
func runHUD(ctx context.Context) error {
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.WithError(err).Warn("close container")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		cancel()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := c.HUDService.Run(ctx); err != nil {
			fail(fmt.Errorf("hud: %w", err))
		}
	}()

	if cfg.HTTPAddr != "" {
		server := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           transport.NewHandler(c.HUDService, c.DetectService),
			ReadHeaderTimeout: 5 * time.Second,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.WithFields(logrus.Fields{"address": cfg.HTTPAddr}).Info("starting HTTP server")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fail(fmt.Errorf("http server: %w", err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Warn("HTTP server forced to shutdown")
			}
		}()
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, c, cfg.WatchInterval)
		if err != nil {
			fail(fmt.Errorf("telegram bot: %w", err))
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := bot.Run(ctx); err != nil {
					fail(fmt.Errorf("telegram bot: %w", err))
				}
			}()
		}
	}

	logger.WithFields(logrus.Fields{
		"source":   cfg.FrameSource,
		"frame":    fmt.Sprintf("%dx%d", cfg.FrameWidth, cfg.FrameHeight),
		"threaded": cfg.Threaded,
	}).Info("vision-hud is running")

	<-ctx.Done()
	wg.Wait()
	logger.Info("vision-hud stopped")

	return errors.Join(errs...)
}
