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

// SuppliersBackend is the slice of the backend client the supplier
// screens use.
type SuppliersBackend interface {
	ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, token string, id int64) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, token string, s models.Supplier) error
	UpdateSupplier(ctx context.Context, token string, s models.Supplier) error
	DeleteSupplier(ctx context.Context, token string, id int64) error
}

// SupplierHandler serves the supplier list and forms.
type SupplierHandler struct {
	Backend SuppliersBackend
	Errs    *Errors
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Backend.ListSuppliers(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, suppliers, service.SupplierFields)
}

func (h *SupplierHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"supplier": models.Supplier{}})
}

func (h *SupplierHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	supplier, err := h.Backend.GetSupplier(r.Context(), token(r), id)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"supplier": supplier})
}

type supplierForm struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
}

func (f *supplierForm) validate() string {
	if strings.TrimSpace(f.Name) == "" {
		return "name is required"
	}
	if f.Email != "" && !strings.Contains(f.Email, "@") {
		return "email must be a valid address"
	}
	return ""
}

func (f *supplierForm) toModel(id int64) models.Supplier {
	return models.Supplier{
		SupplierID:    id,
		Name:          strings.TrimSpace(f.Name),
		ContactNumber: f.ContactNumber,
		Email:         f.Email,
	}
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form supplierForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.CreateSupplier(r.Context(), token(r), form.toModel(0)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "supplier added", "next": "/suppliers"})
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	var form supplierForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.UpdateSupplier(r.Context(), token(r), form.toModel(id)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "supplier updated", "next": "/suppliers"})
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	if err := h.Backend.DeleteSupplier(r.Context(), token(r), id); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "supplier deleted"})
}
