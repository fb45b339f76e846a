package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
	"github.com/BruksfildServices01/vet-backoffice/internal/validators"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	ClinicName string
}

// Result is a signed-in user together with the session token issued for it.
type Result struct {
	User   *models.User
	Token  string
	Claims session.Claims
}

type Service struct {
	users    user.Repository
	sessions *session.Manager
	audit    *audit.Dispatcher

	// checkDomain is nil when email domain lookups are disabled.
	checkDomain func(email string) bool
}

func NewService(users user.Repository, sessions *session.Manager, audit *audit.Dispatcher, emailDomainCheck bool) *Service {
	s := &Service{users: users, sessions: sessions, audit: audit}
	if emailDomainCheck {
		s.checkDomain = validators.IsEmailDomainValid
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	email := validators.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name_required")
	}

	if len(in.Password) > MaxPasswordBytes {
		return nil, httperr.ErrValidation("password_too_long")
	}

	if s.checkDomain != nil && !s.checkDomain(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, httperr.ErrValidation("password_too_long")
		}
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		ClinicName:   strings.TrimSpace(in.ClinicName),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrConflict("email_already_registered")
		}
		return nil, err
	}

	id := u.ID
	s.audit.Dispatch(audit.Event{UserID: u.ID, Action: "user_registered", Entity: "user", EntityID: &id})

	return s.issue(u)
}

// Login reports invalid_credentials for unknown emails and wrong passwords alike.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	u, err := s.users.GetUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrUnauthorized("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrUnauthorized("invalid_credentials")
	}

	id := u.ID
	s.audit.Dispatch(audit.Event{UserID: u.ID, Action: "user_login", Entity: "user", EntityID: &id})

	return s.issue(u)
}

func (s *Service) Logout(ctx context.Context, claims session.Claims) error {
	if err := s.sessions.Revoke(ctx, claims); err != nil {
		return err
	}

	id := claims.UserID
	s.audit.Dispatch(audit.Event{UserID: claims.UserID, Action: "user_logout", Entity: "user", EntityID: &id})
	return nil
}

func (s *Service) Me(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrUnauthorized("invalid_session")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issue(u *models.User) (*Result, error) {
	token, claims, err := s.sessions.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Token: token, Claims: claims}, nil
}
