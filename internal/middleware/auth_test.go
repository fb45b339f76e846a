package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/config"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
)

func setupRouter(sm *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(sm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	sm := session.NewManager(&config.Config{
		JWTSecret:         "secret",
		SessionTTL:        time.Hour,
		SessionCookieName: "vet_session",
	}, session.NewMemoryRevocationStore())
	r := setupRouter(sm)

	token, claims, err := sm.Issue(9)
	if err != nil {
		t.Fatal(err)
	}
	revokedToken, revokedClaims, _ := sm.Issue(9)
	_ = sm.Revoke(context.Background(), revokedClaims)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "vet_session", Value: token})
		}, http.StatusOK},
		{"bearer fallback", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}, http.StatusOK},
		{"wrong scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic "+token)
		}, http.StatusUnauthorized},
		{"garbage cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "vet_session", Value: "nope"})
		}, http.StatusUnauthorized},
		{"revoked session", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "vet_session", Value: revokedToken})
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusOK {
				var body map[string]uint
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["user_id"] != claims.UserID {
					t.Fatalf("user_id = %d", body["user_id"])
				}
			}
		})
	}
}
