// Package models defines the core data structures shared between the
// gateway, the backend client, and the HTTP handlers. Entity records
// mirror the pharmacy backend's JSON shapes; the gateway adds no
// lifecycle semantics beyond holding the last-fetched snapshot.
package models

// Role is the closed set of roles the backend can grant a session.
type Role string

const (
	// RolePharmacist has full access to the administrative screens.
	RolePharmacist Role = "pharmacist"
	// RoleStaff is limited to stock views and sale entry.
	RoleStaff Role = "staff"
)

// RoleFromAuthority maps a Spring-style authority string
// ("ROLE_PHARMACIST", "ROLE_STAFF") to a Role. Anything that is not
// a pharmacist authority is treated as staff, matching the backend's
// two-role model.
func RoleFromAuthority(authority string) Role {
	if authority == "ROLE_PHARMACIST" {
		return RolePharmacist
	}
	return RoleStaff
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePharmacist || r == RoleStaff
}

// HomePath is the landing route for the role after login.
func (r Role) HomePath() string {
	if r == RoleStaff {
		return "/staff"
	}
	return "/"
}

// Session is the single canonical record of an authenticated user,
// one row keyed by the cookie value. The bearer token lives only
// here; it never reaches the browser.
type Session struct {
	// ID is the opaque cookie value identifying the session.
	ID string `db:"id"`
	// Role gates which routes the session may reach.
	Role Role `db:"role"`
	// Name is the display name shown in the top bar.
	Name string `db:"name"`
	// Token is the backend bearer token attached to proxied calls.
	Token string `db:"token"`
	// CreatedAt is a unix timestamp, used only for housekeeping.
	CreatedAt int64 `db:"created_at"`
}

// Product is a catalog entry owned by the backend.
type Product struct {
	ProductID    int64   `json:"productId"`
	Name         string  `json:"name"`
	GenericName  string  `json:"genericName"`
	Manufacturer string  `json:"manufacturer"`
	Dosage       string  `json:"dosage"`
	Price        float64 `json:"price"`
	SupplierID   int64   `json:"supplierId"`
	SupplierName string  `json:"supplierName,omitempty"`
}

// Stock is a batch of a product with a quantity and expiry date.
// Dates travel as "YYYY-MM-DD" strings, exactly as the backend sends
// them.
type Stock struct {
	StockID     int64  `json:"stockId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	BatchNumber string `json:"batchNumber"`
	Quantity    int    `json:"quantity"`
	ExpiryDate  string `json:"expiryDate"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	SaleItemID  int64   `json:"saleItemId,omitempty"`
	SaleID      int64   `json:"saleId,omitempty"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Sale is a completed transaction. TotalAmount is always the sum of
// the line totals; it is recomputed rather than trusted.
type Sale struct {
	SaleID        int64      `json:"saleId"`
	CustomerName  string     `json:"customerName"`
	SaleDate      string     `json:"saleDate"`
	PaymentMethod string     `json:"paymentMethod"`
	TotalAmount   float64    `json:"totalAmount"`
	SaleItems     []SaleItem `json:"saleItems"`
}

// Supplier is a product vendor.
type Supplier struct {
	SupplierID    int64  `json:"supplierId"`
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
}

// User is a backend account visible to pharmacists.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

// MonthlySales is one bucket of the month-by-month revenue series.
// Month is the first seven characters of the sale date ("2025-05").
type MonthlySales struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"totalAmount"`
}

// SearchResult is one typed hit from the cross-entity search
// endpoint. Results are ephemeral: produced per query, discarded on
// the next one.
type SearchResult struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Search result types as the backend reports them.
const (
	SearchTypeProduct  = "PRODUCT"
	SearchTypeStock    = "STOCK"
	SearchTypeSale     = "SALE"
	SearchTypeSupplier = "SUPPLIER"
	SearchTypeUser     = "USER"
)
