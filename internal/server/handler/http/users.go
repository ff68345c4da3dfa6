package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// UsersBackend is the slice of the backend client the user
// management screens use. Accounts are created through registration,
// so there is no create here.
type UsersBackend interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	GetUser(ctx context.Context, token string, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, token string, u models.User) error
	DeleteUser(ctx context.Context, token string, id int64) error
}

// UserHandler serves the account list and edit form, pharmacist only.
type UserHandler struct {
	Backend UsersBackend
	Errs    *Errors
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Backend.ListUsers(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, users, service.UserFields)
}

// AddForm bootstraps the account creation screen. Creation itself
// goes through the public registration endpoint; this only hands the
// form its role options.
func (h *UserHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"user":  models.User{},
		"roles": []models.Role{models.RolePharmacist, models.RoleStaff},
	})
}

func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.Backend.GetUser(r.Context(), token(r), id)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

type userForm struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

func (f *userForm) validate() string {
	if strings.TrimSpace(f.Username) == "" {
		return "username is required"
	}
	if strings.TrimSpace(f.Email) == "" || !strings.Contains(f.Email, "@") {
		return "email must be a valid address"
	}
	if f.Role != "" && !models.Role(strings.ToLower(f.Role)).Valid() {
		return "role must be pharmacist or staff"
	}
	return ""
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var form userForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	user := models.User{
		ID:          id,
		Username:    strings.TrimSpace(form.Username),
		Email:       strings.TrimSpace(form.Email),
		FullName:    form.FullName,
		PhoneNumber: form.PhoneNumber,
		Role:        form.Role,
		Active:      form.Active,
	}
	if err := h.Backend.UpdateUser(r.Context(), token(r), user); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "user updated", "next": "/users"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.Backend.DeleteUser(r.Context(), token(r), id); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "user deleted"})
}
