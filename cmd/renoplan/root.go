package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/api"
	"github.com/oakbuilt/renoplan/internal/config"
	"github.com/oakbuilt/renoplan/internal/media"
	"github.com/oakbuilt/renoplan/internal/status"
	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/store/airtable"
	"github.com/oakbuilt/renoplan/internal/store/memory"
	"github.com/oakbuilt/renoplan/internal/store/notion"
	"github.com/oakbuilt/renoplan/internal/types"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "renoplan",
	Short: "RenoPlan - home renovation planning service",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(uploadCmd)
}

// loadConfig reads .env.local then .env before the config layer runs,
// matching the local-development workflow. Missing files are fine.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
	return config.Load()
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initLogger(cfg)
	slog.Info("configuration loaded", "backend", cfg.Backend)

	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "backend", cfg.Backend)

	uploader, err := media.NewUploader(cfg.Media)
	if err != nil {
		return err
	}

	checker := status.NewChecker(cfg)

	handler := api.NewHandler(st, checker, uploader, cfg.Backend, cfg.Auth.APIKey, Version)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully. Anything else is a real failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}
	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveStore builds the backend the config selects. A backend whose
// credentials are missing still resolves; its operations fail with
// ErrNotConfigured so the availability report stays reachable.
func resolveStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendAirtable:
		if !cfg.Airtable.Configured() {
			return store.Unconfigured("airtable"), nil
		}
		return airtable.New(cfg.Airtable.APIKey, cfg.Airtable.BaseID), nil
	case config.BackendNotion:
		if !cfg.Notion.Configured() {
			return store.Unconfigured("notion"), nil
		}
		dbs := notion.Databases{Default: cfg.Notion.DatabaseID}
		if len(cfg.Notion.Databases) > 0 {
			dbs.ByEntity = make(map[types.Entity]string, len(cfg.Notion.Databases))
			for k, v := range cfg.Notion.Databases {
				dbs.ByEntity[types.Entity(k)] = v
			}
		}
		return notion.New(cfg.Notion.APIKey, dbs), nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
