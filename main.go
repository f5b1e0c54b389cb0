// main.go
//
// Entrypoint: loads .env, configures logging, and wires the selected store
// backend into the sync service and HTTP server.

package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrlynn/speakerbingo/internal/gamesync"
	"github.com/mrlynn/speakerbingo/internal/httpserver"
	"github.com/mrlynn/speakerbingo/internal/identity"
	"github.com/mrlynn/speakerbingo/internal/profile"
	"github.com/mrlynn/speakerbingo/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func serve(cfg *Config) error {
	if lvl, err := zerolog.ParseLevel(cfg.logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var rooms store.Store
	var profiles profile.Store
	switch cfg.storeBackend {
	case "sqlite":
		db, err := store.OpenDB(cfg.dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		rooms = store.NewSQLiteStore(db)
		profiles = profile.NewSQLStore(db)
	default:
		rooms = store.NewMemoryStore()
		profiles = profile.NewMemoryStore()
	}

	svc := gamesync.New(rooms, gamesync.Config{
		MaxPlayers:            cfg.maxPlayers,
		TriviaIntervalMinutes: cfg.triviaInterval,
	})
	issuer := identity.NewIssuer(cfg.sessionSecret, cfg.sessionTTL)
	srv := httpserver.New(svc, profiles, issuer, httpserver.Options{
		BaseURL:    cfg.baseURL,
		CORSOrigin: cfg.corsOrigin,
	})

	addr := fmt.Sprintf("%s:%d", cfg.bind, cfg.port)
	log.Info().Str("addr", addr).Str("store", cfg.storeBackend).Msg("starting speakerbingo server")
	return srv.Start(addr)
}
