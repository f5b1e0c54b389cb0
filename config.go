// config.go
//
// CLI flags and environment configuration. Every flag is bound to a
// SPEAKERBINGO_* environment variable; flags win when both are set. The
// store backend is chosen here, explicitly, so tests and deployments inject
// the adapter they want instead of the server sniffing its environment.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind            string
	port            int
	storeBackend    string
	dbPath          string
	baseURL         string
	corsOrigin      string
	sessionSecret   string
	sessionTTL      time.Duration
	maxPlayers      int
	triviaInterval  int
	logLevel        string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storeBackend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid store backend %q (must be memory or sqlite)", c.storeBackend)
	}
	if c.maxPlayers < 1 {
		return fmt.Errorf("invalid max players: %d", c.maxPlayers)
	}
	if c.triviaInterval < 1 {
		return fmt.Errorf("invalid trivia interval minutes: %d", c.triviaInterval)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SPEAKERBINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "speakerbingo",
		Short:         "Multiplayer speaker-bingo game server: shared rooms, trivia races, leaderboards.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SPEAKERBINGO_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: SPEAKERBINGO_PORT)")
	fs.StringVar(&cfg.storeBackend, "store", "memory", "room store backend, memory or sqlite (env: SPEAKERBINGO_STORE)")
	fs.StringVar(&cfg.dbPath, "db-path", "./data/speakerbingo.db", "sqlite database path (env: SPEAKERBINGO_DB_PATH)")
	fs.StringVar(&cfg.baseURL, "base-url", "http://localhost:5175", "externally reachable URL for join links (env: SPEAKERBINGO_BASE_URL)")
	fs.StringVar(&cfg.corsOrigin, "cors-origin", "http://localhost:3000", "allowed browser origin (env: SPEAKERBINGO_CORS_ORIGIN)")
	fs.StringVar(&cfg.sessionSecret, "session-secret", "dev_secret_change_me", "HMAC secret for session tokens (env: SPEAKERBINGO_SESSION_SECRET)")
	fs.DurationVar(&cfg.sessionTTL, "session-ttl", 24*time.Hour, "session token lifetime (env: SPEAKERBINGO_SESSION_TTL)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 8, "maximum players per room (env: SPEAKERBINGO_MAX_PLAYERS)")
	fs.IntVar(&cfg.triviaInterval, "trivia-interval", 5, "minutes between trivia questions (env: SPEAKERBINGO_TRIVIA_INTERVAL)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level (env: SPEAKERBINGO_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
