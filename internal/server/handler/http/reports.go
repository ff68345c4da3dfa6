package http

import (
	"context"
	"net/http"
	"time"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// ReportsBackend is the slice of the backend client the report screen
// uses. Reports derive everything from raw collections so a report
// never disagrees with the lists it summarizes.
type ReportsBackend interface {
	SalesByDateRange(ctx context.Context, token, start, end string) ([]models.Sale, error)
	ListStocks(ctx context.Context, token string) ([]models.Stock, error)
	ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error)
}

// ReportHandler serves the pharmacist reporting screen.
type ReportHandler struct {
	Backend           ReportsBackend
	Errs              *Errors
	LowStockThreshold int
	ExpiringDays      int
	Now               func() time.Time
}

func (h *ReportHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

const topProductsLimit = 5

// Generate runs one report. The type selects the computation; start
// and end bound the sales range for the sales-derived reports and
// default to the trailing thirty days.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "salesSummary"
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if end == "" {
		end = h.now().Format("2006-01-02")
	}
	if start == "" {
		start = h.now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			respondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
	}

	switch kind {
	case "salesSummary":
		sales, err := h.Backend.SalesByDateRange(r.Context(), token(r), start, end)
		if err != nil {
			h.Errs.Backend(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"type":    kind,
			"start":   start,
			"end":     end,
			"summary": service.SummarizeSales(sales),
			"monthly": service.MonthlyBreakdown(sales),
		})
	case "topSellingProducts":
		sales, err := h.Backend.SalesByDateRange(r.Context(), token(r), start, end)
		if err != nil {
			h.Errs.Backend(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"type":     kind,
			"start":    start,
			"end":      end,
			"products": service.TopSellingProducts(sales, topProductsLimit),
		})
	case "stockStatus":
		stocks, err := h.Backend.ListStocks(r.Context(), token(r))
		if err != nil {
			h.Errs.Backend(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"type":      kind,
			"threshold": h.LowStockThreshold,
			"rows":      service.StockStatus(stocks, h.LowStockThreshold),
		})
	case "expiringProducts":
		today := h.now().Format("2006-01-02")
		horizon := h.now().AddDate(0, 0, h.ExpiringDays).Format("2006-01-02")
		stocks, err := h.Backend.ExpiringSoon(r.Context(), token(r), today, horizon)
		if err != nil {
			h.Errs.Backend(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"type":  kind,
			"start": today,
			"end":   horizon,
			"rows":  stocks,
		})
	default:
		respondError(w, http.StatusBadRequest, "unknown report type")
	}
}
