package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/medixpharma/pharmadmin/internal/middleware"
	"github.com/medixpharma/pharmadmin/internal/models"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Products  *ProductHandler
	Stocks    *StockHandler
	Sales     *SaleHandler
	Suppliers *SupplierHandler
	Users     *UserHandler
	Reports   *ReportHandler
	Search    *SearchHandler
}

// NewRouter constructs the HTTP handler serving the admin gateway.
// Screen routes are declared here in the same shape as the route
// table: the Guard middleware decides render-or-redirect per request,
// and RequireRole wraps the mutations that are not screens of their
// own.
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs each request and its status
//  2. WithSession(sessions)      — resolves the session cookie
//  3. Guard                      — applies the route table
func NewRouter(h Handlers, sessions middleware.SessionLoader, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithSession(sessions))
	r.Use(middleware.Guard)

	// Public auth endpoints. The screens themselves are in the route
	// table; the POSTs only accept JSON.
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Post("/login", h.Auth.Login)
		r.Post("/login/verify", h.Auth.VerifyOTP)
		r.Post("/register", h.Auth.Register)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password", h.Auth.ResetPassword)
	})
	r.Post("/logout", h.Auth.Logout)

	// Landing screens.
	r.Get("/", h.Dashboard.Home)
	r.Get("/staff", h.Dashboard.StaffHome)

	// Top-bar search, available to both roles.
	r.Get("/search", h.Search.Query)

	// Pharmacist screens. The Guard already redirects staff away from
	// these paths; RequireRole covers the bare entity mutations that
	// have no screen route.
	r.Get("/products", h.Products.List)
	r.Get("/products/add", h.Products.AddForm)
	r.Post("/products/add", h.Products.Create)
	r.Get("/products/edit/{id}", h.Products.EditForm)
	r.Post("/products/edit/{id}", h.Products.Update)
	r.With(middleware.RequireRole(models.RolePharmacist)).
		Delete("/products/{id}", h.Products.Delete)

	r.Get("/stocks", h.Stocks.List)
	r.Get("/stocks/add", h.Stocks.AddForm)
	r.Post("/stocks/add", h.Stocks.Create)
	r.Get("/stocks/edit/{id}", h.Stocks.EditForm)
	r.Post("/stocks/edit/{id}", h.Stocks.Update)
	r.With(middleware.RequireRole(models.RolePharmacist)).
		Delete("/stocks/{id}", h.Stocks.Delete)
	r.Get("/out-of-stock", h.Stocks.OutOfStock)
	r.Get("/expiring", h.Stocks.Expiring)

	r.Get("/sales", h.Sales.List)
	r.Get("/sales/add", h.Sales.AddForm)
	r.Post("/sales/add", h.Sales.Create)
	r.Get("/sales/edit/{id}", h.Sales.EditForm)
	r.Post("/sales/edit/{id}", h.Sales.Update)
	r.With(middleware.RequireRole(models.RolePharmacist)).
		Delete("/sales/{id}", h.Sales.Delete)
	r.With(middleware.RequireRole(models.RolePharmacist, models.RoleStaff)).
		Get("/sales/{id}", h.Sales.Get)
	r.Get("/transactions", h.Sales.Transactions)

	r.Get("/suppliers", h.Suppliers.List)
	r.Get("/suppliers/add", h.Suppliers.AddForm)
	r.Post("/suppliers/add", h.Suppliers.Create)
	r.Get("/suppliers/edit/{id}", h.Suppliers.EditForm)
	r.Post("/suppliers/edit/{id}", h.Suppliers.Update)
	r.With(middleware.RequireRole(models.RolePharmacist)).
		Delete("/suppliers/{id}", h.Suppliers.Delete)

	r.Get("/users", h.Users.List)
	r.Get("/users/add", h.Users.AddForm)
	r.Get("/users/update/{id}", h.Users.EditForm)
	r.Post("/users/update/{id}", h.Users.Update)
	r.With(middleware.RequireRole(models.RolePharmacist)).
		Delete("/users/{id}", h.Users.Delete)

	r.Get("/reports", h.Reports.Generate)

	// Staff screens.
	r.Get("/staff-stocks", h.Stocks.List)
	r.Get("/sales-add", h.Sales.AddForm)
	r.Post("/sales-add", h.Sales.Create)

	return r
}
