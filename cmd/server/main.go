package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal/config"
	"github.com/scythe504/skribblr-party/internal/crypto"
	"github.com/scythe504/skribblr-party/internal/game"
	"github.com/scythe504/skribblr-party/internal/logger"
	"github.com/scythe504/skribblr-party/internal/server"
	"github.com/scythe504/skribblr-party/internal/storage"
	"github.com/scythe504/skribblr-party/internal/websocket"
	"github.com/scythe504/skribblr-party/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lexicon := words.NewLexicon(nil)
	if cfg.WordsFile != "" {
		if lexicon, err = words.LoadCSV(cfg.WordsFile, nil); err != nil {
			log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load words")
		}
		log.Info().Str("file", cfg.WordsFile).Msg("loaded word list")
	}

	opts := game.Options{
		Config:  cfg.Game,
		Lexicon: lexicon,
		Hasher:  crypto.NewHasher(nil),
	}
	if cfg.PostgresURL != "" {
		archive, err := storage.NewArchive(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open game archive")
		}
		defer archive.Close()
		opts.Archive = archive
		log.Info().Msg("game archive enabled")
	}

	hub := websocket.NewHub()
	opts.Sender = hub
	engine := game.NewEngine(opts)
	gateway := websocket.NewGateway(engine, hub, cfg.AllowedOrigins)

	srv := server.NewServer(cfg.Port, cfg.AllowedOrigins, engine, gateway)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}
