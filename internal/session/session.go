// Package session issues and verifies the signed session token carried in
// the HttpOnly cookie, and tracks revoked session ids until they expire.
package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-backoffice/internal/config"
)

var ErrInvalidToken = errors.New("invalid session token")

// RevocationStore remembers logged-out session ids until their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type Claims struct {
	UserID    uint
	SessionID string
	ExpiresAt time.Time
}

type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	store      RevocationStore
}

func NewManager(cfg *config.Config, store RevocationStore) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		ttl:        cfg.SessionTTL,
		cookieName: cfg.SessionCookieName,
		secure:     cfg.CookieSecure,
		store:      store,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) Issue(userID uint) (string, Claims, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        claims.SessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Parse verifies signature and expiry. Revocation is checked separately.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &rc, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(rc.Subject, 10, 64)
	if err != nil || userID == 0 || rc.ID == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    uint(userID),
		SessionID: rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}

func (m *Manager) Revoke(ctx context.Context, c Claims) error {
	return m.store.Revoke(ctx, c.SessionID, c.ExpiresAt)
}

func (m *Manager) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	return m.store.IsRevoked(ctx, sessionID)
}

func (m *Manager) SetCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, maxAge, "/", "", m.secure, true)
}

func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
