package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// LoginResult is the payload of a successful OTP verification.
type LoginResult struct {
	Token string `json:"token"`
	Roles []struct {
		Authority string `json:"authority"`
	} `json:"roles"`
	User struct {
		FullName string `json:"fullName"`
	} `json:"user"`
}

// RegisterRequest is the body of a user registration call.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// Auth flow. None of these carry a bearer token.

func (c *Client) InitiateLogin(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, "", http.MethodPost, "/users/initiate-login", body, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out LoginResult
	if err := c.do(ctx, "", http.MethodPost, "/users/verify-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "", http.MethodPost, "/users", req, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "", http.MethodPost, "/users/forgot-password", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.do(ctx, "", http.MethodPost, "/users/reset-password", body, nil)
}

// Products

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, token, http.MethodGet, "/products", nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, token string, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, p models.Product) error {
	return c.do(ctx, token, http.MethodPost, "/products", p, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, p models.Product) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/products/%d", p.ProductID), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// Stocks

func (c *Client) ListStocks(ctx context.Context, token string) ([]models.Stock, error) {
	var out []models.Stock
	err := c.do(ctx, token, http.MethodGet, "/stocks", nil, &out)
	return out, err
}

func (c *Client) GetStock(ctx context.Context, token string, id int64) (*models.Stock, error) {
	var out models.Stock
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/stocks/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStock(ctx context.Context, token string, s models.Stock) error {
	return c.do(ctx, token, http.MethodPost, "/stocks", s, nil)
}

func (c *Client) UpdateStock(ctx context.Context, token string, s models.Stock) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/stocks/%d", s.StockID), s, nil)
}

func (c *Client) DeleteStock(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/stocks/%d", id), nil, nil)
}

// LowStock returns batches whose quantity is below threshold. The
// filtering is the backend's; the dashboard only counts the result.
func (c *Client) LowStock(ctx context.Context, token string, threshold int) ([]models.Stock, error) {
	params := url.Values{"threshold": {strconv.Itoa(threshold)}}
	var out []models.Stock
	err := c.do(ctx, token, http.MethodGet, queryPath("/stocks/low-stock", params), nil, &out)
	return out, err
}

// ExpiringSoon returns batches expiring inside [start, end], both
// "YYYY-MM-DD".
func (c *Client) ExpiringSoon(ctx context.Context, token, start, end string) ([]models.Stock, error) {
	params := url.Values{"start": {start}, "end": {end}}
	var out []models.Stock
	err := c.do(ctx, token, http.MethodGet, queryPath("/stocks/expiring-soon", params), nil, &out)
	return out, err
}

// Sales

func (c *Client) ListSales(ctx context.Context, token string) ([]models.Sale, error) {
	var out []models.Sale
	err := c.do(ctx, token, http.MethodGet, "/sales", nil, &out)
	return out, err
}

func (c *Client) GetSale(ctx context.Context, token string, id int64) (*models.Sale, error) {
	var out models.Sale
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/sales/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSale(ctx context.Context, token string, s models.Sale) error {
	return c.do(ctx, token, http.MethodPost, "/sales", s, nil)
}

func (c *Client) UpdateSale(ctx context.Context, token string, s models.Sale) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/sales/%d", s.SaleID), s, nil)
}

func (c *Client) DeleteSale(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/sales/%d", id), nil, nil)
}

func (c *Client) SalesByDateRange(ctx context.Context, token, start, end string) ([]models.Sale, error) {
	params := url.Values{"start": {start}, "end": {end}}
	var out []models.Sale
	err := c.do(ctx, token, http.MethodGet, queryPath("/sales/date-range", params), nil, &out)
	return out, err
}

func (c *Client) MonthlySales(ctx context.Context, token string) ([]models.MonthlySales, error) {
	var out []models.MonthlySales
	err := c.do(ctx, token, http.MethodGet, "/sales/monthly", nil, &out)
	return out, err
}

// Suppliers

func (c *Client) ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error) {
	var out []models.Supplier
	err := c.do(ctx, token, http.MethodGet, "/suppliers", nil, &out)
	return out, err
}

func (c *Client) GetSupplier(ctx context.Context, token string, id int64) (*models.Supplier, error) {
	var out models.Supplier
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/suppliers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, token string, s models.Supplier) error {
	return c.do(ctx, token, http.MethodPost, "/suppliers", s, nil)
}

func (c *Client) UpdateSupplier(ctx context.Context, token string, s models.Supplier) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/suppliers/%d", s.SupplierID), s, nil)
}

func (c *Client) DeleteSupplier(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/suppliers/%d", id), nil, nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, token, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, token string, id int64) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, u models.User) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/users/%d", u.ID), u, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// Search queries the cross-entity search endpoint.
func (c *Client) Search(ctx context.Context, token, query string) ([]models.SearchResult, error) {
	params := url.Values{"query": {query}}
	var out []models.SearchResult
	err := c.do(ctx, token, http.MethodGet, queryPath("/search", params), nil, &out)
	return out, err
}
