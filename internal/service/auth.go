package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/models"
)

// AuthBackend defines the backend calls the authentication flow uses.
type AuthBackend interface {
	// InitiateLogin checks credentials and triggers an OTP email.
	InitiateLogin(ctx context.Context, email, password string) error
	// VerifyOTP completes the login and returns the bearer token,
	// granted authorities and display name.
	VerifyOTP(ctx context.Context, email, otp string) (*backend.LoginResult, error)
	// RegisterUser creates a new backend account.
	RegisterUser(ctx context.Context, req backend.RegisterRequest) error
	// ForgotPassword starts the email-driven reset flow.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword completes the reset flow.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// SessionRepository defines the persistence operations required by
// the authentication service.
type SessionRepository interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthService implements the anonymous → otp-pending → authenticated
// flow by delegating credential checks to the backend and persisting
// the resulting session.
type AuthService struct {
	backend  AuthBackend
	sessions SessionRepository
	now      func() time.Time
}

// NewAuthService constructs an AuthService. now may be nil, in which
// case time.Now is used.
func NewAuthService(b AuthBackend, sessions SessionRepository, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{backend: b, sessions: sessions, now: now}
}

// InitiateLogin forwards credentials to the backend, which mails the
// OTP on success. No session exists until the OTP is verified.
func (s *AuthService) InitiateLogin(ctx context.Context, email, password string) error {
	return s.backend.InitiateLogin(ctx, email, password)
}

// CompleteLogin verifies the OTP, maps the granted authority onto the
// closed role set, and persists a new session. The returned session
// ID becomes the cookie value.
func (s *AuthService) CompleteLogin(ctx context.Context, email, otp string) (*models.Session, error) {
	result, err := s.backend.VerifyOTP(ctx, email, otp)
	if err != nil {
		return nil, err
	}

	role := models.RoleStaff
	if len(result.Roles) > 0 {
		role = models.RoleFromAuthority(result.Roles[0].Authority)
	}

	session := models.Session{
		ID:        uuid.NewString(),
		Role:      role,
		Name:      result.User.FullName,
		Token:     result.Token,
		CreatedAt: s.now().Unix(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Session loads the persisted session for a cookie value.
func (s *AuthService) Session(ctx context.Context, id string) (*models.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Logout destroys the persisted session. The in-memory copy held by
// the current request dies with the request.
func (s *AuthService) Logout(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// Register forwards a registration request to the backend.
func (s *AuthService) Register(ctx context.Context, req backend.RegisterRequest) error {
	return s.backend.RegisterUser(ctx, req)
}

// ForgotPassword starts the reset flow for the given address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.backend.ForgotPassword(ctx, email)
}

// ResetPassword completes the reset flow.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return s.backend.ResetPassword(ctx, email, otp, newPassword)
}
