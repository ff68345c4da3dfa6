package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

type mockAuthBackend struct {
	InitiateLoginFunc func(ctx context.Context, email, password string) error
	VerifyOTPFunc     func(ctx context.Context, email, otp string) (*backend.LoginResult, error)
}

func (m *mockAuthBackend) InitiateLogin(ctx context.Context, email, password string) error {
	return m.InitiateLoginFunc(ctx, email, password)
}
func (m *mockAuthBackend) VerifyOTP(ctx context.Context, email, otp string) (*backend.LoginResult, error) {
	return m.VerifyOTPFunc(ctx, email, otp)
}
func (m *mockAuthBackend) RegisterUser(context.Context, backend.RegisterRequest) error { return nil }
func (m *mockAuthBackend) ForgotPassword(context.Context, string) error                { return nil }
func (m *mockAuthBackend) ResetPassword(context.Context, string, string, string) error { return nil }

type mockSessions struct {
	created []models.Session
	deleted []string
	err     error
}

func (m *mockSessions) Create(_ context.Context, s models.Session) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, s)
	return nil
}
func (m *mockSessions) Get(_ context.Context, id string) (*models.Session, error) {
	for _, s := range m.created {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, errors.New("not found")
}
func (m *mockSessions) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func loginResult(authority, name, token string) *backend.LoginResult {
	r := &backend.LoginResult{Token: token}
	r.Roles = append(r.Roles, struct {
		Authority string `json:"authority"`
	}{Authority: authority})
	r.User.FullName = name
	return r
}

func TestCompleteLogin_MapsPharmacistRole(t *testing.T) {
	sessions := &mockSessions{}
	svc := service.NewAuthService(&mockAuthBackend{
		VerifyOTPFunc: func(context.Context, string, string) (*backend.LoginResult, error) {
			return loginResult("ROLE_PHARMACIST", "Jane Doe", "tok-1"), nil
		},
	}, sessions, func() time.Time { return time.Unix(1747267200, 0) })

	s, err := svc.CompleteLogin(context.Background(), "jane@medix.example", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Role != models.RolePharmacist {
		t.Errorf("role = %q; want pharmacist", s.Role)
	}
	if s.Name != "Jane Doe" || s.Token != "tok-1" {
		t.Errorf("unexpected session: %+v", s)
	}
	if s.ID == "" {
		t.Error("session must get a generated ID")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one persisted session, got %d", len(sessions.created))
	}
	if sessions.created[0].CreatedAt != 1747267200 {
		t.Errorf("created_at = %d; want the injected clock", sessions.created[0].CreatedAt)
	}
}

func TestCompleteLogin_UnknownAuthorityIsStaff(t *testing.T) {
	sessions := &mockSessions{}
	svc := service.NewAuthService(&mockAuthBackend{
		VerifyOTPFunc: func(context.Context, string, string) (*backend.LoginResult, error) {
			return loginResult("ROLE_STAFF", "Sam", "tok-2"), nil
		},
	}, sessions, nil)

	s, err := svc.CompleteLogin(context.Background(), "sam@medix.example", "000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Role != models.RoleStaff {
		t.Errorf("role = %q; want staff", s.Role)
	}
}

func TestCompleteLogin_BadOTP(t *testing.T) {
	wantErr := &backend.Error{Status: 400, Message: "Invalid OTP"}
	svc := service.NewAuthService(&mockAuthBackend{
		VerifyOTPFunc: func(context.Context, string, string) (*backend.LoginResult, error) {
			return nil, wantErr
		},
	}, &mockSessions{}, nil)

	_, err := svc.CompleteLogin(context.Background(), "x@y.z", "bad")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error to pass through, got %v", err)
	}
}

func TestCompleteLogin_PersistFailure(t *testing.T) {
	svc := service.NewAuthService(&mockAuthBackend{
		VerifyOTPFunc: func(context.Context, string, string) (*backend.LoginResult, error) {
			return loginResult("ROLE_PHARMACIST", "Jane", "tok"), nil
		},
	}, &mockSessions{err: errors.New("db down")}, nil)

	if _, err := svc.CompleteLogin(context.Background(), "x@y.z", "123456"); err == nil {
		t.Fatal("expected persistence failure to surface")
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	sessions := &mockSessions{}
	svc := service.NewAuthService(&mockAuthBackend{}, sessions, nil)
	if err := svc.Logout(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "sess-1" {
		t.Fatalf("expected session sess-1 deleted, got %v", sessions.deleted)
	}
}
