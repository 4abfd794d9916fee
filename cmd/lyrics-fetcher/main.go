package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lyrics-fetcher/internal/app"
	"lyrics-fetcher/internal/config"
	"lyrics-fetcher/internal/lyrics"
	"lyrics-fetcher/internal/player"

	"github.com/rs/zerolog/log"
)

func main() {
	artist := flag.String("artist", "", "Artist name")
	title := flag.String("title", "", "Song title")
	configPath := flag.String("config", "", "Path to config.toml")
	nowPlaying := flag.Bool("now-playing", false, "Read missing artist/title from the running media player (playerctl)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Fetch synchronized lyrics for a song\n\nUsage: %s --artist ARTIST --title TITLE\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	app.SetupLogging("info")
	ctx := context.Background()

	var p *player.Player
	if *nowPlaying && (*artist == "" || *title == "") {
		p = player.New()
		a, t, err := p.CurrentTrack(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read current track from player")
		} else {
			if *artist == "" {
				*artist = a
			}
			if *title == "" {
				*title = t
			}
		}
	}

	if *artist == "" || *title == "" {
		fmt.Fprintln(os.Stderr, "error: --artist and --title are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load(*configPath)

	a, err := app.New(cfg)
	if err != nil {
		// 仍然输出合法的 JSON 文档
		log.Error().Err(err).Msg("Failed to initialize lyrics fetcher")
		a = app.NewWithResolver(cfg, lyrics.NewResolver(nil, lyrics.Options{DisableFallback: !cfg.App.Fallback}))
	}
	defer a.Close()

	if p == nil {
		if err := a.Run(ctx, *artist, *title, os.Stdout); err != nil {
			log.Error().Err(err).Msg("Failed to write lyrics")
		}
		return
	}

	result := a.Lyrics(ctx, *artist, *title)
	if pos, err := p.Position(ctx); err == nil {
		log.Info().Float64("position", pos).Int("current_line", result.LineIndexAt(pos)).Msg("Player position")
	}
	if err := app.WriteResult(os.Stdout, result); err != nil {
		log.Error().Err(err).Msg("Failed to write lyrics")
	}
}
