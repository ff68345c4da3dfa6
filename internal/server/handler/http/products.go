package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// ProductsBackend is the slice of the backend client the product
// screens use.
type ProductsBackend interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	GetProduct(ctx context.Context, token string, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, token string, p models.Product) error
	UpdateProduct(ctx context.Context, token string, p models.Product) error
	DeleteProduct(ctx context.Context, token string, id int64) error
	ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error)
}

// ProductHandler serves the product list and forms.
type ProductHandler struct {
	Backend ProductsBackend
	Errs    *Errors
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Backend.ListProducts(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, products, service.ProductFields)
}

// AddForm bootstraps the add screen with its supplier lookup.
func (h *ProductHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Backend.ListSuppliers(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"product":   models.Product{},
		"suppliers": suppliers,
	})
}

// EditForm fetches the record and the supplier lookup in parallel and
// joins them before rendering; if either fails the whole screen
// reports the error.
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var (
		wg          sync.WaitGroup
		product     *models.Product
		suppliers   []models.Supplier
		productErr  error
		supplierErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		product, productErr = h.Backend.GetProduct(r.Context(), token(r), id)
	}()
	go func() {
		defer wg.Done()
		suppliers, supplierErr = h.Backend.ListSuppliers(r.Context(), token(r))
	}()
	wg.Wait()

	if productErr != nil {
		h.Errs.Backend(w, r, productErr)
		return
	}
	if supplierErr != nil {
		h.Errs.Backend(w, r, supplierErr)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"product":   product,
		"suppliers": suppliers,
	})
}

type productForm struct {
	Name         string  `json:"name"`
	GenericName  string  `json:"genericName"`
	Manufacturer string  `json:"manufacturer"`
	Dosage       string  `json:"dosage"`
	Price        float64 `json:"price"`
	SupplierID   int64   `json:"supplierId"`
}

func (f *productForm) validate() string {
	if strings.TrimSpace(f.Name) == "" {
		return "name is required"
	}
	if f.Price < 0 {
		return "price must be a non-negative number"
	}
	if f.SupplierID <= 0 {
		return "supplier is required"
	}
	return ""
}

func (f *productForm) toModel(id int64) models.Product {
	return models.Product{
		ProductID:    id,
		Name:         strings.TrimSpace(f.Name),
		GenericName:  f.GenericName,
		Manufacturer: f.Manufacturer,
		Dosage:       f.Dosage,
		Price:        f.Price,
		SupplierID:   f.SupplierID,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form productForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	// Validation failures never reach the backend.
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.CreateProduct(r.Context(), token(r), form.toModel(0)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "product added", "next": "/products"})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var form productForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.UpdateProduct(r.Context(), token(r), form.toModel(id)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "product updated", "next": "/products"})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.Backend.DeleteProduct(r.Context(), token(r), id); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "product deleted"})
}
