package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"lyrics-fetcher/internal/app"
	"lyrics-fetcher/internal/config"
	"lyrics-fetcher/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to config.toml")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	flag.Parse()

	app.SetupLogging("info")
	cfg := config.Load(*configPath)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize lyrics fetcher")
	}
	defer a.Close()

	router := server.NewRouter(a, server.Options{
		Mode:   cfg.Server.Mode,
		Sentry: a.SentryEnabled(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Server.Addr, router).Run(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped with error")
	}
}
