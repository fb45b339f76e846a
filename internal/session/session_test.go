package session

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/config"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(&config.Config{
		JWTSecret:         "test-secret",
		SessionTTL:        ttl,
		SessionCookieName: "vet_session",
	}, NewMemoryRevocationStore())
}

func TestIssueAndParse(t *testing.T) {
	m := testManager(time.Hour)

	token, issued, err := m.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.UserID != 42 || got.SessionID != issued.SessionID || got.SessionID == "" {
		t.Fatalf("claims = %+v, issued %+v", got, issued)
	}
}

func TestParse_Rejects(t *testing.T) {
	m := testManager(time.Hour)
	token, _, _ := m.Issue(1)

	other := testManager(time.Hour)
	other.secret = []byte("another-secret")

	expired := testManager(-time.Minute)
	expiredToken, _, _ := expired.Issue(1)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": mustIssue(t, other),
		"expired":      expiredToken,
		"tampered":     token[:len(token)-2] + "xx",
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Parse(tok); err != ErrInvalidToken {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func mustIssue(t *testing.T, m *Manager) string {
	t.Helper()
	tok, _, err := m.Issue(1)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestRevoke(t *testing.T) {
	m := testManager(time.Hour)
	ctx := context.Background()

	_, claims, _ := m.Issue(5)
	if revoked, _ := m.IsRevoked(ctx, claims.SessionID); revoked {
		t.Fatal("fresh session reported revoked")
	}

	if err := m.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := m.IsRevoked(ctx, claims.SessionID); !revoked {
		t.Fatal("revoked session accepted")
	}
}

func TestMemoryRevocationStore_Expires(t *testing.T) {
	s := NewMemoryRevocationStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Revoke(context.Background(), "sid", now.Add(time.Minute))

	now = now.Add(2 * time.Minute)
	if revoked, _ := s.IsRevoked(context.Background(), "sid"); revoked {
		t.Fatal("revocation outlived the session expiry")
	}
}

func TestSetCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	m.SetCookie(c, "tok", time.Now().Add(time.Hour))

	header := w.Header().Get("Set-Cookie")
	for _, want := range []string{"vet_session=tok", "HttpOnly", "SameSite=Lax", "Path=/"} {
		if !strings.Contains(header, want) {
			t.Errorf("Set-Cookie %q missing %q", header, want)
		}
	}
}
