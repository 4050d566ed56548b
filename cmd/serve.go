package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avenkat/caprelay/internal/api"
	"github.com/avenkat/caprelay/internal/cleaner"
	"github.com/avenkat/caprelay/internal/commands"
	"github.com/avenkat/caprelay/internal/config"
	"github.com/avenkat/caprelay/internal/database"
	"github.com/avenkat/caprelay/internal/extractor"
	"github.com/avenkat/caprelay/internal/formatter"
	"github.com/avenkat/caprelay/internal/forwarder"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/retry"
	"github.com/avenkat/caprelay/internal/rotation"
	"github.com/avenkat/caprelay/internal/settings"
	"github.com/avenkat/caprelay/internal/shutdown"
	"github.com/avenkat/caprelay/internal/stats"
	"github.com/avenkat/caprelay/internal/store"
	"github.com/avenkat/caprelay/internal/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the caption relay server",
	Long: `Start the relay: load persisted state, expose the HTTP API, and keep
state saved across restarts. Forwarding is active when a dump destination
and bot token are configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runServe() error {
	cfg := config.Get()
	logger.InitializeLoggers(cfg.GetAppLogLevel(), cfg.GetStoreLogLevel())

	if err := database.Initialize(); err != nil {
		return err
	}

	db := store.New(database.Get())
	state, err := db.Load(store.State{
		Prefixes: cfg.Caption.DefaultPrefixes,
	})
	if err != nil {
		return err
	}

	rot := rotation.New(nil)
	rot.Restore(state.Prefixes, state.Counter)
	set := settings.New(state.FixedName, state.DumpTarget)
	st := stats.New()

	transport := telegram.New(telegram.Config{
		BaseURL:   cfg.Telegram.APIBaseURL,
		BotToken:  cfg.Telegram.BotToken,
		ParseMode: cfg.Telegram.ParseMode,
		Timeout:   time.Duration(cfg.Telegram.TimeoutSeconds) * time.Second,
	})

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxAttempts = cfg.Forward.RetryAttempts
	if cfg.Forward.InitialBackoffMS > 0 {
		retryConfig.InitialBackoff = time.Duration(cfg.Forward.InitialBackoffMS) * time.Millisecond
	}

	f := formatter.New(extractor.New(), cleaner.New(), rot, set, st, cfg.Caption.DefaultTitle)
	fw := forwarder.New(transport, retryConfig, st)
	dispatcher := commands.New(f, rot, set, st, db, transport)

	server := api.NewServer(f, fw, dispatcher, set, st, db)

	handler := shutdown.New(30 * time.Second)
	handler.Register("database", func(ctx context.Context) error {
		return database.Close()
	})
	handler.Register("state snapshot", func(ctx context.Context) error {
		prefixes, counter := rot.Snapshot()
		db.Save(store.State{
			FixedName:  set.FixedName(),
			DumpTarget: set.DumpTarget(),
			Prefixes:   prefixes,
			Counter:    counter,
		})
		return nil
	})

	errChan := make(chan error, 1)
	go func() {
		logger.AppLogger().WithFields(map[string]interface{}{
			"port": cfg.API.Port,
		}).Info("starting HTTP server")
		errChan <- server.Run(cfg.API.Port)
	}()

	done := make(chan error, 1)
	go func() {
		done <- handler.Wait()
	}()

	select {
	case err := <-errChan:
		handler.Shutdown()
		return err
	case err := <-done:
		return err
	}
}
