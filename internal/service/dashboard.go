package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/models"
)

// DashboardBackend is the slice of the backend client the dashboard
// needs.
type DashboardBackend interface {
	LowStock(ctx context.Context, token string, threshold int) ([]models.Stock, error)
	ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error)
	SalesByDateRange(ctx context.Context, token, start, end string) ([]models.Sale, error)
	MonthlySales(ctx context.Context, token string) ([]models.MonthlySales, error)
	ListSales(ctx context.Context, token string) ([]models.Sale, error)
}

// Dashboard bundles the KPI cards and panels of the landing screen.
type Dashboard struct {
	TodaysTotal       float64               `json:"todaysTotal"`
	TransactionsToday int                   `json:"transactionsToday"`
	LowStockCount     int                   `json:"lowStockCount"`
	ExpiringSoonCount int                   `json:"expiringSoonCount"`
	LowStock          []models.Stock        `json:"lowStock"`
	ExpiringSoon      []models.Stock        `json:"expiringSoon"`
	RecentSales       []models.Sale         `json:"recentSales"`
	MonthlySales      []models.MonthlySales `json:"monthlySales"`
}

// DashboardService derives the landing-screen KPIs from backend
// collections.
type DashboardService struct {
	backend           DashboardBackend
	lowStockThreshold int
	expiringDays      int
	now               func() time.Time
}

// NewDashboardService constructs a DashboardService. now may be nil,
// in which case time.Now is used.
func NewDashboardService(b DashboardBackend, lowStockThreshold, expiringDays int, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		backend:           b,
		lowStockThreshold: lowStockThreshold,
		expiringDays:      expiringDays,
		now:               now,
	}
}

// Load fetches the four dashboard inputs in parallel and joins them
// before computing anything; there is no partial-render path. A
// failed panel degrades to empty rather than failing the screen,
// except a 401, which always propagates so the session gets torn
// down. The monthly series falls back to re-deriving from the raw
// sales listing when the dedicated endpoint fails.
func (s *DashboardService) Load(ctx context.Context, token string) (*Dashboard, error) {
	today := s.now().Format("2006-01-02")
	weekAgo := s.now().AddDate(0, 0, -7).Format("2006-01-02")
	horizon := s.now().AddDate(0, 0, s.expiringDays).Format("2006-01-02")

	var (
		wg          sync.WaitGroup
		lowStock    []models.Stock
		expiring    []models.Stock
		recent      []models.Sale
		monthly     []models.MonthlySales
		errLow      error
		errExpiring error
		errRecent   error
		errMonthly  error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		lowStock, errLow = s.backend.LowStock(ctx, token, s.lowStockThreshold)
	}()
	go func() {
		defer wg.Done()
		expiring, errExpiring = s.backend.ExpiringSoon(ctx, token, today, horizon)
	}()
	go func() {
		defer wg.Done()
		recent, errRecent = s.backend.SalesByDateRange(ctx, token, weekAgo, today)
	}()
	go func() {
		defer wg.Done()
		monthly, errMonthly = s.backend.MonthlySales(ctx, token)
		if errMonthly != nil && !errors.Is(errMonthly, backend.ErrUnauthorized) {
			var sales []models.Sale
			sales, errMonthly = s.backend.ListSales(ctx, token)
			if errMonthly == nil {
				monthly = MonthlyBreakdown(sales)
			}
		}
	}()
	wg.Wait()

	for _, err := range []error{errLow, errExpiring, errRecent, errMonthly} {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
	}

	// Non-auth failures leave their panel empty; the screen renders
	// zeros instead of dying.
	if errLow != nil {
		lowStock = []models.Stock{}
	}
	if errExpiring != nil {
		expiring = []models.Stock{}
	}
	if errRecent != nil {
		recent = []models.Sale{}
	}
	if errMonthly != nil {
		monthly = []models.MonthlySales{}
	}

	total, count := TodayTotals(recent, today)

	d := &Dashboard{
		TodaysTotal:       total,
		TransactionsToday: count,
		LowStockCount:     len(lowStock),
		ExpiringSoonCount: len(expiring),
		LowStock:          lowStock,
		ExpiringSoon:      expiring,
		MonthlySales:      monthly,
	}

	// The recent-sales panel shows the last two entries of the
	// seven-day window.
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	d.RecentSales = recent

	return d, nil
}
