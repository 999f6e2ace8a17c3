package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/killfeedapp/internal/api"
	"github.com/youruser/killfeedapp/internal/config"
	imagepkg "github.com/youruser/killfeedapp/internal/image"
	"github.com/youruser/killfeedapp/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logging.New(config.Default().Logging)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Logging)

	format, err := imagepkg.ParseFormat(cfg.Render.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("render format")
	}

	fetcher := imagepkg.NewHTTPFetcher(cfg.Render.FetchTimeout, cfg.Render.RatePerSec)
	res := imagepkg.NewResources(fetcher, cfg.Render.IconSheetURL)
	composer := imagepkg.NewComposer(fetcher, res, imagepkg.Options{
		ItemBaseURL:          cfg.Render.ItemBaseURL,
		MaxConcurrentFetches: cfg.Render.MaxConcurrentFetches,
		MinFame:              cfg.Kill.MinFame,
		Format:               format,
		Logger:               log,
	})

	// Warm the icon sheet so a broken asset host shows up at startup.
	if _, err := res.Icons(); err != nil {
		log.Warn().Err(err).Str("url", cfg.Render.IconSheetURL).Msg("icon sheet unavailable, kill images will fail")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log))
	api.RegisterRoutes(r, api.NewHandler(composer, log))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Int64("min_fame", cfg.Kill.MinFame).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
