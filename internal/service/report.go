// Package service holds the gateway's business logic: the login/OTP
// flow, pure aggregation over fetched collections, list filtering and
// pagination, the sale draft rules, and the coalescing search.
package service

import (
	"sort"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// MethodTotal is one payment-method bucket of a sales summary.
type MethodTotal struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// DayTotal is one calendar-day bucket of a sales summary.
type DayTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// SalesSummary is the salesSummary report shape.
type SalesSummary struct {
	TotalSales       float64       `json:"totalSales"`
	TransactionCount int           `json:"transactionCount"`
	AverageSale      float64       `json:"averageSale"`
	PaymentMethods   []MethodTotal `json:"paymentMethods"`
	DailyBreakdown   []DayTotal    `json:"dailyBreakdown"`
}

// ProductTotal is one row of the topSellingProducts report.
type ProductTotal struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	QuantitySold int     `json:"quantitySold"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// StockStatusRow is one row of the stockStatus report.
type StockStatusRow struct {
	StockID     int64  `json:"stockId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	IsLow       bool   `json:"isLow"`
}

// dateOnly strips a time suffix off a sale date, keeping "YYYY-MM-DD".
func dateOnly(saleDate string) string {
	if len(saleDate) > 10 {
		return saleDate[:10]
	}
	return saleDate
}

// SummarizeSales reduces a sales collection into totals, an average,
// and payment-method and calendar-day breakdowns. Bucket order is the
// encounter order of the collection.
func SummarizeSales(sales []models.Sale) SalesSummary {
	summary := SalesSummary{
		PaymentMethods: []MethodTotal{},
		DailyBreakdown: []DayTotal{},
	}
	methodIdx := map[string]int{}
	dayIdx := map[string]int{}

	for _, sale := range sales {
		summary.TotalSales += sale.TotalAmount
		summary.TransactionCount++

		method := sale.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		if i, ok := methodIdx[method]; ok {
			summary.PaymentMethods[i].Amount += sale.TotalAmount
		} else {
			methodIdx[method] = len(summary.PaymentMethods)
			summary.PaymentMethods = append(summary.PaymentMethods, MethodTotal{Method: method, Amount: sale.TotalAmount})
		}

		day := dateOnly(sale.SaleDate)
		if day == "" {
			day = "Unknown"
		}
		if i, ok := dayIdx[day]; ok {
			summary.DailyBreakdown[i].Amount += sale.TotalAmount
		} else {
			dayIdx[day] = len(summary.DailyBreakdown)
			summary.DailyBreakdown = append(summary.DailyBreakdown, DayTotal{Date: day, Amount: sale.TotalAmount})
		}
	}

	if summary.TransactionCount > 0 {
		summary.AverageSale = summary.TotalSales / float64(summary.TransactionCount)
	}
	return summary
}

// TopSellingProducts folds sale line items into per-product quantity
// and revenue totals, sorted by quantity descending and truncated to
// limit entries. Ties keep encounter order.
func TopSellingProducts(sales []models.Sale, limit int) []ProductTotal {
	totals := []ProductTotal{}
	idx := map[int64]int{}

	for _, sale := range sales {
		for _, item := range sale.SaleItems {
			if item.ProductID == 0 {
				continue
			}
			if i, ok := idx[item.ProductID]; ok {
				totals[i].QuantitySold += item.Quantity
				totals[i].TotalRevenue += item.TotalPrice
				continue
			}
			name := item.ProductName
			if name == "" {
				name = "Unknown"
			}
			idx[item.ProductID] = len(totals)
			totals = append(totals, ProductTotal{
				ProductID:    item.ProductID,
				ProductName:  name,
				QuantitySold: item.Quantity,
				TotalRevenue: item.TotalPrice,
			})
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].QuantitySold > totals[j].QuantitySold
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// MonthlyBreakdown groups sales by year-month (the first seven
// characters of the sale date) and sums the amounts. It is the single
// monthly aggregation: both the dedicated endpoint's output and the
// fallback over a raw sales listing flow through the same shape, so
// the two paths cannot diverge in grouping behavior.
func MonthlyBreakdown(sales []models.Sale) []models.MonthlySales {
	buckets := []models.MonthlySales{}
	idx := map[string]int{}
	for _, sale := range sales {
		month := "Unknown"
		if len(sale.SaleDate) >= 7 {
			month = sale.SaleDate[:7]
		}
		if i, ok := idx[month]; ok {
			buckets[i].TotalAmount += sale.TotalAmount
			continue
		}
		idx[month] = len(buckets)
		buckets = append(buckets, models.MonthlySales{Month: month, TotalAmount: sale.TotalAmount})
	}
	return buckets
}

// StockStatus flags each batch against the low-stock threshold.
func StockStatus(stocks []models.Stock, threshold int) []StockStatusRow {
	rows := make([]StockStatusRow, 0, len(stocks))
	for _, s := range stocks {
		name := s.ProductName
		if name == "" {
			name = "-"
		}
		rows = append(rows, StockStatusRow{
			StockID:     s.StockID,
			ProductName: name,
			Quantity:    s.Quantity,
			IsLow:       s.Quantity < threshold,
		})
	}
	return rows
}

// TodayTotals sums the sales whose date matches today ("YYYY-MM-DD")
// and counts them.
func TodayTotals(sales []models.Sale, today string) (total float64, count int) {
	for _, sale := range sales {
		if dateOnly(sale.SaleDate) == today {
			total += sale.TotalAmount
			count++
		}
	}
	return total, count
}
