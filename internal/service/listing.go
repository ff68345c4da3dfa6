package service

import (
	"strconv"
	"strings"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// Filter keeps the items whose stringified fields contain the query,
// case-insensitively. An empty query keeps everything. This is the
// synchronous per-keystroke list filter; it never talks to the
// backend.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Paginate slices one page out of the filtered collection. Pages are
// 1-based; anything out of range yields an empty page. Callers reset
// to page 1 whenever the page size changes.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Pages reports how many pages the collection spans at the given
// page size; empty collections still have one page.
func Pages(total, pageSize int) int {
	if pageSize < 1 || total <= pageSize {
		return 1
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// The fixed per-entity field sets the list screens match against.

func ProductFields(p models.Product) []string {
	return []string{
		p.Name,
		p.GenericName,
		p.Manufacturer,
		p.Dosage,
		p.SupplierName,
		strconv.FormatFloat(p.Price, 'f', 2, 64),
	}
}

func StockFields(s models.Stock) []string {
	return []string{
		s.ProductName,
		s.BatchNumber,
		s.ExpiryDate,
		strconv.Itoa(s.Quantity),
	}
}

func SaleFields(s models.Sale) []string {
	return []string{
		s.CustomerName,
		s.SaleDate,
		s.PaymentMethod,
		strconv.FormatFloat(s.TotalAmount, 'f', 2, 64),
	}
}

func SupplierFields(s models.Supplier) []string {
	return []string{s.Name, s.ContactNumber, s.Email}
}

func UserFields(u models.User) []string {
	return []string{u.Username, u.Email, u.FullName, u.PhoneNumber, u.Role}
}
