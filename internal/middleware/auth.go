package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
)

const (
	ContextUserID        = "userID"
	ContextSessionID     = "sessionID"
	ContextSessionExpiry = "sessionExpiry"
)

// AuthMiddleware accepts the session cookie, or an Authorization: Bearer
// header carrying the same token.
func AuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, sessions.CookieName())
		if token == "" {
			httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			httperr.Unauthorized(c, "invalid_session", "Session is invalid or expired.")
			return
		}

		revoked, err := sessions.IsRevoked(c.Request.Context(), claims.SessionID)
		if err != nil {
			log.Error().Err(err).Msg("session revocation lookup failed")
			httperr.Internal(c, "internal_error", "Something went wrong.")
			return
		}
		if revoked {
			httperr.Unauthorized(c, "invalid_session", "Session is invalid or expired.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextSessionExpiry, claims.ExpiresAt)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

// Session rebuilds the claims the middleware verified for this request.
func Session(c *gin.Context) session.Claims {
	return session.Claims{
		UserID:    UserID(c),
		SessionID: c.GetString(ContextSessionID),
		ExpiresAt: c.MustGet(ContextSessionExpiry).(time.Time),
	}
}
