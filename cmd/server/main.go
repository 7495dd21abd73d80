package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/assistant"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/auth"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/config"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/content"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/handler"
	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Headless portfolio content service",
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the configured store with the bundled content",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg := config.Load()
			st := openStore(cfg, log)
			if st == nil {
				return errors.New("no store configured: set STORE_URL and STORE_KEY, or DATABASE_PATH")
			}
			defer func() { _ = st.Close() }()

			repo := content.NewRepository(st, content.Bundled{}, log)
			if err := repo.Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info("seed complete")
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	st := openStore(cfg, log)
	if st != nil {
		defer func() { _ = st.Close() }()
	} else {
		log.Info("no store configured, serving bundled content")
	}

	repo := content.NewRepository(st, content.Bundled{}, log)
	bridge := buildBridge(ctx, cfg, log)
	gate := auth.NewGate(auth.NewClient(cfg.AuthURL, cfg.AuthKey))

	h := handler.New(repo, bridge, gate, log, cfg.CookieDomain)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h.Router(),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the backend: hosted REST store when configured, local
// sqlite when a database path is set, nil otherwise. The nil branch is
// deliberate: callers degrade to bundled content instead of retrying.
func openStore(cfg *config.Config, log *zap.Logger) store.Store {
	if cfg.StoreConfigured() {
		if s := store.NewRESTStore(cfg.StoreURL, cfg.StoreKey); s != nil {
			log.Info("using hosted store", zap.String("url", cfg.StoreURL))
			return s
		}
	}
	if cfg.DatabasePath != "" {
		s, err := store.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			log.Warn("local store unavailable, serving bundled content", zap.Error(err))
			return nil
		}
		log.Info("using local store", zap.String("path", cfg.DatabasePath))
		return s
	}
	return nil
}

func buildBridge(ctx context.Context, cfg *config.Config, log *zap.Logger) *assistant.Bridge {
	gen, err := assistant.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Warn("gemini client unavailable, assistant runs offline", zap.Error(err))
		return assistant.NewBridge(nil, log)
	}
	if gen == nil {
		return assistant.NewBridge(nil, log)
	}
	return assistant.NewBridge(gen, log)
}
