// internal/identity/identity.go
//
// Session identity for players. The game core treats identity as an external
// concern: all it needs is a stable playerId and a display name. This
// package supplies both: a fresh uuid per session plus an HS256-signed
// token binding {playerId, playerName, roomCode}, so a client can prove on
// later requests that it is the same player that created or joined the room.
// Tokens are advisory: handlers accept an unauthenticated playerId too,
// but when a token is presented it must match.

package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session identifies one player in one room.
type Session struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	RoomCode   string `json:"roomCode"`
}

// Issuer signs and verifies session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. ttl bounds how long a token verifies. Clients
// also expire their own stored sessions; this is the server-side backstop.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// NewPlayerID returns a fresh opaque player identifier.
func NewPlayerID() string { return uuid.NewString() }

// Issue signs a token for the session.
func (i *Issuer) Issue(s Session) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"playerId":   s.PlayerID,
		"playerName": s.PlayerName,
		"roomCode":   s.RoomCode,
		"iat":        now.Unix(),
		"exp":        now.Add(i.ttl).Unix(),
	})
	return t.SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded session.
func (i *Issuer) Verify(token string) (Session, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return Session{}, ErrInvalidToken
	}
	s := Session{}
	s.PlayerID, _ = claims["playerId"].(string)
	s.PlayerName, _ = claims["playerName"].(string)
	s.RoomCode, _ = claims["roomCode"].(string)
	if s.PlayerID == "" {
		return Session{}, ErrInvalidToken
	}
	return s, nil
}

// FromRequest extracts and verifies a bearer token, if any. It never fails a
// guest request: (nil, nil) means no token was presented.
func (i *Issuer) FromRequest(r *http.Request) (*Session, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return nil, nil
	}
	s, err := i.Verify(strings.TrimSpace(a[7:]))
	if err != nil {
		return nil, err
	}
	return &s, nil
}
