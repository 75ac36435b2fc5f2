package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hacchu-app/hacchu/internal/app"
	"github.com/hacchu-app/hacchu/internal/document"
	"github.com/hacchu-app/hacchu/internal/export"
	"github.com/hacchu-app/hacchu/internal/manage"
	"github.com/hacchu-app/hacchu/internal/order"
	"github.com/hacchu-app/hacchu/internal/platform/kv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("store close", slog.Any("error", err))
			}
		}()
	}

	repo := order.NewRepository(store, logger)
	docs := document.NewBuilder(document.StampRegistry(cfg.StampRegistry), cfg.PDFFontPath)
	exporter := export.NewExporter(cfg.PDFFontPath)

	defaults := order.CompanyDefaults{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Phone:   cfg.CompanyPhone,
		Email:   cfg.CompanyEmail,
	}

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		OrderHandler:  order.NewHandler(logger, repo, docs, defaults),
		ManageHandler: manage.NewHandler(logger, repo, docs, exporter),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr), slog.String("backend", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg *app.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case app.StoreBackendRedis:
		return kv.NewRedisStore(ctx, cfg.RedisAddr, cfg.StoreKey)
	default:
		return kv.NewFileStore(cfg.StorePath)
	}
}
