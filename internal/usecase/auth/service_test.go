package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/config"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
)

func newService() (*Service, *session.Manager) {
	sessions := session.NewManager(&config.Config{
		JWTSecret:         "test-secret",
		SessionTTL:        time.Hour,
		SessionCookieName: "vet_session",
	}, session.NewMemoryRevocationStore())
	return NewService(memory.NewStore().Users(), sessions, nil, false), sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, sessions := newService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Name:       "Dr. Silva",
		Email:      "  Vet@Clinic.Example ",
		Password:   "s3cret-pass",
		ClinicName: "Happy Paws",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Email != "vet@clinic.example" {
		t.Fatalf("email = %q, want normalized", reg.User.Email)
	}
	if reg.User.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear text")
	}

	claims, err := sessions.Parse(reg.Token)
	if err != nil || claims.UserID != reg.User.ID {
		t.Fatalf("token claims = %+v, %v", claims, err)
	}

	login, err := svc.Login(ctx, "VET@clinic.example", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID || login.Claims.SessionID == reg.Claims.SessionID {
		t.Fatalf("login result = %+v", login.Claims)
	}

	me, err := svc.Me(ctx, reg.User.ID)
	if err != nil || me.ClinicName != "Happy Paws" {
		t.Fatalf("Me = %+v, %v", me, err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	in := RegisterInput{Name: "A", Email: "a@b.example", Password: "password1"}

	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatal(err)
	}
	in.Email = "A@B.example"
	if _, err := svc.Register(ctx, in); !httperr.IsBusiness(err, "email_already_registered") {
		t.Fatalf("err = %v", err)
	}
}

func TestRegister_DomainCheck(t *testing.T) {
	svc, _ := newService()
	svc.checkDomain = func(string) bool { return false }

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@nowhere.invalid", Password: "password1"})
	if !httperr.IsBusiness(err, "invalid_email_domain") {
		t.Fatalf("err = %v", err)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, password := range []string{
		strings.Repeat("a", 80),
		strings.Repeat("é", 40), // 40 runes, 80 bytes
	} {
		_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.example", Password: password})
		if !httperr.IsBusiness(err, "password_too_long") {
			t.Errorf("Register(%d bytes) err = %v", len(password), err)
		}
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.example", Password: strings.Repeat("a", 72)}); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.example", Password: "password1"}); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct{ email, password string }{
		{"a@b.example", "wrong-password"},
		{"nobody@b.example", "password1"},
	} {
		if _, err := svc.Login(ctx, tt.email, tt.password); !httperr.IsBusiness(err, "invalid_credentials") {
			t.Errorf("Login(%q) err = %v", tt.email, err)
		}
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, sessions := newService()
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.example", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, res.Claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	revoked, err := sessions.IsRevoked(ctx, res.Claims.SessionID)
	if err != nil || !revoked {
		t.Fatalf("revoked = %v, %v", revoked, err)
	}
}
