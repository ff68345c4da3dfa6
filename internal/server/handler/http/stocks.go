package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// StocksBackend is the slice of the backend client the stock screens
// use.
type StocksBackend interface {
	ListStocks(ctx context.Context, token string) ([]models.Stock, error)
	GetStock(ctx context.Context, token string, id int64) (*models.Stock, error)
	CreateStock(ctx context.Context, token string, s models.Stock) error
	UpdateStock(ctx context.Context, token string, s models.Stock) error
	DeleteStock(ctx context.Context, token string, id int64) error
	LowStock(ctx context.Context, token string, threshold int) ([]models.Stock, error)
	ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error)
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
}

// StockHandler serves the stock list, forms and the derived
// out-of-stock and expiring views.
type StockHandler struct {
	Backend           StocksBackend
	Errs              *Errors
	LowStockThreshold int
	ExpiringDays      int
	Now               func() time.Time
}

func (h *StockHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.Backend.ListStocks(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, stocks, service.StockFields)
}

// OutOfStock lists batches at or below the configured low-stock
// threshold.
func (h *StockHandler) OutOfStock(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.Backend.LowStock(r.Context(), token(r), h.LowStockThreshold)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, stocks, service.StockFields)
}

// Expiring lists batches whose expiry date falls inside the
// configured window starting today.
func (h *StockHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	start := today.Format("2006-01-02")
	end := today.AddDate(0, 0, h.ExpiringDays).Format("2006-01-02")
	stocks, err := h.Backend.ExpiringSoon(r.Context(), token(r), start, end)
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondList(w, r, stocks, service.StockFields)
}

func (h *StockHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	products, err := h.Backend.ListProducts(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"stock":    models.Stock{},
		"products": products,
	})
}

func (h *StockHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid stock id")
		return
	}

	var (
		wg         sync.WaitGroup
		stock      *models.Stock
		products   []models.Product
		stockErr   error
		productErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stock, stockErr = h.Backend.GetStock(r.Context(), token(r), id)
	}()
	go func() {
		defer wg.Done()
		products, productErr = h.Backend.ListProducts(r.Context(), token(r))
	}()
	wg.Wait()

	if stockErr != nil {
		h.Errs.Backend(w, r, stockErr)
		return
	}
	if productErr != nil {
		h.Errs.Backend(w, r, productErr)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"stock":    stock,
		"products": products,
	})
}

type stockForm struct {
	ProductID   int64  `json:"productId"`
	BatchNumber string `json:"batchNumber"`
	Quantity    int    `json:"quantity"`
	ExpiryDate  string `json:"expiryDate"`
}

func (f *stockForm) validate() string {
	if f.ProductID <= 0 {
		return "product is required"
	}
	if strings.TrimSpace(f.BatchNumber) == "" {
		return "batch number is required"
	}
	if f.Quantity < 0 {
		return "quantity must be a non-negative number"
	}
	if _, err := time.Parse("2006-01-02", f.ExpiryDate); err != nil {
		return "expiry date must be YYYY-MM-DD"
	}
	return ""
}

func (f *stockForm) toModel(id int64) models.Stock {
	return models.Stock{
		StockID:     id,
		ProductID:   f.ProductID,
		BatchNumber: strings.TrimSpace(f.BatchNumber),
		Quantity:    f.Quantity,
		ExpiryDate:  f.ExpiryDate,
	}
}

func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form stockForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.CreateStock(r.Context(), token(r), form.toModel(0)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "stock added", "next": "/stocks"})
}

func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid stock id")
		return
	}
	var form stockForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if msg := form.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.Backend.UpdateStock(r.Context(), token(r), form.toModel(id)); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "stock updated", "next": "/stocks"})
}

func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid stock id")
		return
	}
	if err := h.Backend.DeleteStock(r.Context(), token(r), id); err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "stock deleted"})
}
