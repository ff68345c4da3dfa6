package http

import (
	"net/http"
	"strconv"

	"github.com/medixpharma/pharmadmin/internal/service"
)

const defaultPageSize = 10

// listPage is the shape every list screen renders: one filtered,
// paginated snapshot of the collection.
type listPage[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Pages    int `json:"pages"`
}

// respondList applies the common list contract: case-insensitive
// substring filter over the entity's fixed field set, then pure
// slicing. Page defaults to 1 and pageSize to 10.
func respondList[T any](w http.ResponseWriter, r *http.Request, items []T, fields func(T) []string) {
	q := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := defaultPageSize
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil && v > 0 {
		pageSize = v
	}

	filtered := service.Filter(items, q.Get("query"), fields)
	paged := service.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, listPage[T]{
		Items:    paged,
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		Pages:    service.Pages(len(filtered), pageSize),
	})
}
