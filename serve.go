package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jalad-shrimali/cdr-billing/config"
	"github.com/jalad-shrimali/cdr-billing/desk"
	"github.com/jalad-shrimali/cdr-billing/handlers"
	"github.com/jalad-shrimali/cdr-billing/logger"
)

const shutdownGrace = 8 * time.Second

func runServe(ctx context.Context, cfg config.Config) error {
	log := logger.Logger.With().Str("service", "cdr-billing").Logger()

	for _, dir := range []string{cfg.UploadDir, cfg.ExportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("cannot create dir")
			return err
		}
	}

	d := desk.New(desk.WithLogger(log))
	h := handlers.New(d, handlers.Options{
		UploadDir:      cfg.UploadDir,
		ExportDir:      cfg.ExportDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
