package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/middleware"
	"github.com/medixpharma/pharmadmin/internal/models"
)

// AuthFlow is the slice of the auth service the handler needs.
type AuthFlow interface {
	InitiateLogin(ctx context.Context, email, password string) error
	CompleteLogin(ctx context.Context, email, otp string) (*models.Session, error)
	Register(ctx context.Context, req backend.RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// AuthHandler serves the anonymous → otp-pending → authenticated
// transitions.
type AuthHandler struct {
	Auth AuthFlow
	Errs *Errors
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials with the backend, which mails an OTP. No
// session or cookie exists yet.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if err := h.Auth.InitiateLogin(r.Context(), req.Email, req.Password); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "otp sent"})
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP completes the login: the backend validates the code, the
// gateway persists the session and sets the cookie, and the client is
// told which home screen its role lands on.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		respondError(w, http.StatusBadRequest, "email and otp are required")
		return
	}
	session, err := h.Auth.CompleteLogin(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	setSessionCookie(w, session.ID)
	respondJSON(w, http.StatusOK, map[string]string{
		"role": string(session.Role),
		"name": session.Name,
		"home": session.Role.HomePath(),
	})
}

// Logout destroys the session on both sides of the cookie, along
// with any pending search state it accumulated.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.SessionFromContext(r.Context()); session != nil {
		if err := h.Errs.EndSession(r.Context(), session.ID); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to log out")
			return
		}
	}
	clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// Register forwards a new-account request after shape validation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FullName == "" {
		respondError(w, http.StatusBadRequest, "username, password, email and fullName are required")
		return
	}
	if req.Role != "" && !models.Role(req.Role).Valid() {
		respondError(w, http.StatusBadRequest, "role must be pharmacist or staff")
		return
	}
	err := h.Auth.Register(r.Context(), backend.RegisterRequest{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// ForgotPassword starts the email-driven reset flow.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset email sent"})
}

// ResetPassword completes the reset flow.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "email, otp and newPassword are required")
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}
