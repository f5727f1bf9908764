package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BNDS-Robin23/spanish-rogue/internal/grammar"
	"github.com/BNDS-Robin23/spanish-rogue/internal/httpserver"
	"github.com/BNDS-Robin23/spanish-rogue/internal/lexicon"
	"github.com/BNDS-Robin23/spanish-rogue/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// A broken or missing lexicon degrades to generic rules and the
	// built-in verb pool; it never stops the server.
	var lex grammar.Lexicon
	if l, err := lexicon.Load(); err != nil {
		log.Warn().Err(err).Msg("lexicon unavailable, using fallback verbs")
	} else {
		log.Info().Int("verbs", l.Size()).Msg("lexicon loaded")
		lex = l
	}

	db, err := openDB(getEnv("DATABASE_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, lex)
	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting spanish-rogue server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
