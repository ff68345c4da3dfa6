package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// DashboardLoader assembles the pharmacist landing screen.
type DashboardLoader interface {
	Load(ctx context.Context, token string) (*service.Dashboard, error)
}

// StaffBackend is the slice of the backend client the staff home
// screen uses.
type StaffBackend interface {
	ListStocks(ctx context.Context, token string) ([]models.Stock, error)
	SalesByDateRange(ctx context.Context, token, start, end string) ([]models.Sale, error)
	LowStock(ctx context.Context, token string, threshold int) ([]models.Stock, error)
	ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error)
}

// DashboardHandler serves the two landing screens, one per role.
type DashboardHandler struct {
	Dashboard         DashboardLoader
	Staff             StaffBackend
	Errs              *Errors
	LowStockThreshold int
	ExpiringDays      int
	Now               func() time.Time
}

func (h *DashboardHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Home renders the pharmacist dashboard.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Dashboard.Load(r.Context(), token(r))
	if err != nil {
		h.Errs.Backend(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":      sessionName(r),
		"dashboard": dash,
	})
}

// StaffHome renders the staff landing screen: today's sale totals,
// low-stock and expiring-soon counts, the trailing week of sales and
// the current stock snapshot, fetched in parallel. A failed panel
// degrades to empty, matching the pharmacist dashboard.
func (h *DashboardHandler) StaffHome(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format("2006-01-02")
	weekAgo := h.now().AddDate(0, 0, -7).Format("2006-01-02")
	horizon := h.now().AddDate(0, 0, h.ExpiringDays).Format("2006-01-02")

	var (
		wg          sync.WaitGroup
		stocks      []models.Stock
		sales       []models.Sale
		lowStock    []models.Stock
		expiring    []models.Stock
		stockErr    error
		salesErr    error
		lowErr      error
		expiringErr error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		stocks, stockErr = h.Staff.ListStocks(r.Context(), token(r))
	}()
	go func() {
		defer wg.Done()
		sales, salesErr = h.Staff.SalesByDateRange(r.Context(), token(r), weekAgo, today)
	}()
	go func() {
		defer wg.Done()
		lowStock, lowErr = h.Staff.LowStock(r.Context(), token(r), h.LowStockThreshold)
	}()
	go func() {
		defer wg.Done()
		expiring, expiringErr = h.Staff.ExpiringSoon(r.Context(), token(r), today, horizon)
	}()
	wg.Wait()

	for _, err := range []error{stockErr, salesErr, lowErr, expiringErr} {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.Errs.Backend(w, r, err)
			return
		}
	}
	if stockErr != nil {
		stocks = []models.Stock{}
	}
	if salesErr != nil {
		sales = []models.Sale{}
	}
	if lowErr != nil {
		lowStock = []models.Stock{}
	}
	if expiringErr != nil {
		expiring = []models.Stock{}
	}

	total, count := service.TodayTotals(sales, today)
	respondJSON(w, http.StatusOK, map[string]any{
		"name":              sessionName(r),
		"todaysTotal":       total,
		"transactionsToday": count,
		"lowStockCount":     len(lowStock),
		"expiringSoonCount": len(expiring),
		"recentSales":       sales,
		"stocks":            stocks,
	})
}
