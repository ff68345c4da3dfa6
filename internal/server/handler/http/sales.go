package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// SalesBackend is the slice of the backend client the sale screens
// use.
type SalesBackend interface {
	ListSales(ctx context.Context, token string) ([]models.Sale, error)
	GetSale(ctx context.Context, token string, id int64) (*models.Sale, error)
	CreateSale(ctx context.Context, token string, s models.Sale) error
	UpdateSale(ctx context.Context, token string, s models.Sale) error
	DeleteSale(ctx context.Context, token string, id int64) error
	SalesByDateRange(ctx context.Context, token, start, end string) ([]models.Sale, error)
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
}

// SaleHandler serves the sale list, the sale entry screen and sale
// deletion. Sale entry is the one screen staff can write to.
type SaleHandler struct {
	Backend SalesBackend
	Errs    *Errors
	Now     func() time.Time
}

func (h *SaleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Backend.ListSales(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, sales, service.SaleFields)
}

// Transactions lists the trailing week of sales for both roles.
func (h *SaleHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format("2006-01-02")
	weekAgo := h.now().AddDate(0, 0, -7).Format("2006-01-02")
	sales, err := h.Backend.SalesByDateRange(r.Context(), token(r), weekAgo, today)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, sales, service.SaleFields)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, err := h.Backend.GetSale(r.Context(), token(r), id)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// AddForm bootstraps the sale entry screen with the product lookup.
func (h *SaleHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	products, err := h.Backend.ListProducts(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sale":     models.Sale{SaleItems: []models.SaleItem{}},
		"products": products,
	})
}

// EditForm fetches the sale and the product lookup in parallel; if
// either fails the whole screen reports the error.
func (h *SaleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	var (
		wg         sync.WaitGroup
		sale       *models.Sale
		products   []models.Product
		saleErr    error
		productErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sale, saleErr = h.Backend.GetSale(r.Context(), token(r), id)
	}()
	go func() {
		defer wg.Done()
		products, productErr = h.Backend.ListProducts(r.Context(), token(r))
	}()
	wg.Wait()

	if saleErr != nil {
		h.Errs.Backend(w, r, saleErr)
		return
	}
	if productErr != nil {
		h.Errs.Backend(w, r, productErr)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sale":     sale,
		"products": products,
	})
}

type saleItemForm struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type saleForm struct {
	CustomerName  string         `json:"customerName"`
	SaleDate      string         `json:"saleDate"`
	PaymentMethod string         `json:"paymentMethod"`
	SaleItems     []saleItemForm `json:"saleItems"`
}

// buildSale rebuilds the sale through a draft so every line is
// validated and every total is recomputed. Line totals and the grand
// total sent by the browser are ignored. A non-empty return message
// is the validation failure.
func (h *SaleHandler) buildSale(form saleForm) (models.Sale, string) {
	if strings.TrimSpace(form.CustomerName) == "" {
		return models.Sale{}, "customer name is required"
	}
	if len(form.SaleItems) == 0 {
		return models.Sale{}, "a sale needs at least one item"
	}

	var draft service.SaleDraft
	for _, item := range form.SaleItems {
		if item.ProductID <= 0 {
			return models.Sale{}, "every sale item needs a product"
		}
		if item.UnitPrice < 0 {
			return models.Sale{}, "unit price must be a non-negative number"
		}
		if err := draft.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateProduct):
				return models.Sale{}, "each product can appear only once in a sale"
			case errors.Is(err, service.ErrInvalidQuantity):
				return models.Sale{}, "quantity must be a positive number"
			default:
				return models.Sale{}, err.Error()
			}
		}
	}

	date := form.SaleDate
	if date == "" {
		date = h.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.Sale{}, "sale date must be YYYY-MM-DD"
	}

	return models.Sale{
		CustomerName:  strings.TrimSpace(form.CustomerName),
		SaleDate:      date,
		PaymentMethod: form.PaymentMethod,
		TotalAmount:   draft.Total(),
		SaleItems:     draft.Items,
	}, ""
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form saleForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	sale, msg := h.buildSale(form)
	if msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.CreateSale(r.Context(), token(r), sale); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "sale recorded", "next": "/sales"})
}

func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var form saleForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	sale, msg := h.buildSale(form)
	if msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	sale.SaleID = id
	if err := h.Backend.UpdateSale(r.Context(), token(r), sale); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sale updated", "next": "/sales"})
}

func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	if err := h.Backend.DeleteSale(r.Context(), token(r), id); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sale deleted"})
}
