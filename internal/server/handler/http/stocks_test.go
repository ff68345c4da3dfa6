package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// fakeStocksBackend implements StocksBackend for testing.
type fakeStocksBackend struct {
	listStocks   func() ([]models.Stock, error)
	getStock     func(id int64) (*models.Stock, error)
	createStock  func(s models.Stock) error
	updateStock  func(s models.Stock) error
	deleteStock  func(id int64) error
	lowStock     func(threshold int) ([]models.Stock, error)
	expiringSoon func(start, end string) ([]models.Stock, error)
	listProducts func() ([]models.Product, error)
}

func (f *fakeStocksBackend) ListStocks(ctx context.Context, token string) ([]models.Stock, error) {
	return f.listStocks()
}

func (f *fakeStocksBackend) GetStock(ctx context.Context, token string, id int64) (*models.Stock, error) {
	return f.getStock(id)
}

func (f *fakeStocksBackend) CreateStock(ctx context.Context, token string, s models.Stock) error {
	return f.createStock(s)
}

func (f *fakeStocksBackend) UpdateStock(ctx context.Context, token string, s models.Stock) error {
	return f.updateStock(s)
}

func (f *fakeStocksBackend) DeleteStock(ctx context.Context, token string, id int64) error {
	return f.deleteStock(id)
}

func (f *fakeStocksBackend) LowStock(ctx context.Context, token string, threshold int) ([]models.Stock, error) {
	return f.lowStock(threshold)
}

func (f *fakeStocksBackend) ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error) {
	return f.expiringSoon(start, end)
}

func (f *fakeStocksBackend) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	return f.listProducts()
}

// The out-of-stock view is the backend's low-stock listing at the
// configured threshold, not a zero-quantity filter.
func TestStockHandler_OutOfStock(t *testing.T) {
	all := []models.Stock{
		{StockID: 1, ProductName: "Aspirin", Quantity: 3},
		{StockID: 2, ProductName: "Napa", Quantity: 15},
		{StockID: 3, ProductName: "Seclo", Quantity: 0},
		{StockID: 4, ProductName: "Monas", Quantity: 9},
	}
	var gotThreshold int
	fake := &fakeStocksBackend{
		lowStock: func(threshold int) ([]models.Stock, error) {
			gotThreshold = threshold
			low := make([]models.Stock, 0)
			for _, s := range all {
				if s.Quantity < threshold {
					low = append(low, s)
				}
			}
			return low, nil
		},
	}
	h := &StockHandler{Backend: fake, Errs: newTestErrors(&fakeAuthFlow{}), LowStockThreshold: 10}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/out-of-stock", nil)
	h.OutOfStock(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotThreshold != 10 {
		t.Fatalf("expected threshold 10 passed to the backend, got %d", gotThreshold)
	}
	var page listPage[models.Stock]
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 low batches, got %d", page.Total)
	}
}

func TestStockHandler_Expiring_WindowDates(t *testing.T) {
	var gotStart, gotEnd string
	fake := &fakeStocksBackend{
		expiringSoon: func(start, end string) ([]models.Stock, error) {
			gotStart, gotEnd = start, end
			return []models.Stock{}, nil
		},
	}
	h := &StockHandler{
		Backend:      fake,
		Errs:         newTestErrors(&fakeAuthFlow{}),
		ExpiringDays: 30,
		Now:          func() time.Time { return time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC) },
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/expiring", nil)
	h.Expiring(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotStart != "2025-05-15" || gotEnd != "2025-06-14" {
		t.Fatalf("expected window [2025-05-15, 2025-06-14], got [%s, %s]", gotStart, gotEnd)
	}
}

func TestStockHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing product", body: `{"batchNumber":"B1","quantity":5,"expiryDate":"2025-12-01"}`},
		{name: "missing batch", body: `{"productId":1,"batchNumber":" ","quantity":5,"expiryDate":"2025-12-01"}`},
		{name: "negative quantity", body: `{"productId":1,"batchNumber":"B1","quantity":-5,"expiryDate":"2025-12-01"}`},
		{name: "bad date", body: `{"productId":1,"batchNumber":"B1","quantity":5,"expiryDate":"01/12/2025"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			fake := &fakeStocksBackend{
				createStock: func(models.Stock) error { called = true; return nil },
			}
			h := &StockHandler{Backend: fake, Errs: newTestErrors(&fakeAuthFlow{})}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/stocks/add", bytes.NewBufferString(tt.body))
			h.Create(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status 422, got %d", rec.Code)
			}
			if called {
				t.Fatal("invalid form must not reach the backend")
			}
		})
	}
}
