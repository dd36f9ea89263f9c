package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"voynich/internal/app"
	"voynich/internal/config"
	"voynich/internal/corpus"
	"voynich/internal/logger"
	"voynich/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log, closer := logger.New(cfg.Log)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := corpus.Open(cfg.Corpus.Path, log)
	if err != nil {
		return err
	}
	filter := app.NewFilter(cfg.Corpus, c, log)
	r := resolver.New(filter, log, cfg.Resolver.Options()...)

	st, closeStore, err := app.OpenStore(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeStore()
	if st == nil {
		log.Warn("redis not configured, mapping endpoints disabled")
	}

	srv, err := app.NewServer(c, filter, r, st, app.ServerOptions{
		CacheSize:   cfg.Server.ModelCacheSize,
		MappingProb: cfg.Resolver.MappingProb,
		MappingGap:  cfg.Resolver.MappingGap,
	}, log)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.Server.Addr), slog.Int("pages", len(c.Pages)))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	return httpSrv.Shutdown(shutdownCtx)
}
