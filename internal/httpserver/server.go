// internal/httpserver/server.go
//
// HTTP server wiring for the speaker-bingo backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/content".
//   - Game endpoints mounted under /games (see routes_game.go, routes_trivia.go).
//   - Profile/leaderboard endpoints (routes_profile.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Session tokens are optional: guests can play with just their playerId,
//     but a presented token must verify and match.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mrlynn/speakerbingo/internal/content"
	"github.com/mrlynn/speakerbingo/internal/gamesync"
	"github.com/mrlynn/speakerbingo/internal/identity"
	"github.com/mrlynn/speakerbingo/internal/profile"
)

// Options carries the handler-level configuration.
type Options struct {
	// BaseURL is the externally reachable URL used in join links / QR codes.
	BaseURL string
	// CORSOrigin is the single allowed browser origin.
	CORSOrigin string
}

// Server bundles router, sync service, profile store, and token issuer.
type Server struct {
	r        *chi.Mux
	svc      *gamesync.Service
	profiles profile.Store
	issuer   *identity.Issuer
	opts     Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *gamesync.Service, profiles profile.Store, issuer *identity.Issuer, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, profiles: profiles, issuer: issuer, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsForOrigin(opts.CORSOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"speakerbingo","endpoints":["/health","POST /games","GET /games/{roomCode}","POST /games/{roomCode}/update","GET|POST /games/{roomCode}/trivia","POST /games/{roomCode}/stop","GET /leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/content", func(w http.ResponseWriter, r *http.Request) {
		cats, phrases, questions := content.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{
			"categories": cats, "phrases": phrases, "questions": questions,
		})
	})

	s.mountGames()
	s.mountProfiles()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsForOrigin enables credentialed CORS for a single origin.
func corsForOrigin(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
