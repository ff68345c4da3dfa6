// Package nav holds the declarative route table and the pure route
// guard decision. Keeping the table and the decision in one place
// avoids drift between navigation menus and per-route role checks.
package nav

import (
	"strings"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// Decision is the outcome kind of a guard evaluation.
type Decision int

const (
	// Render serves the requested screen.
	Render Decision = iota
	// Redirect sends the client to Outcome.Path.
	Redirect
	// RenderNothing serves an empty response. It only occurs when
	// the guard would redirect to the path the client is already on,
	// which would otherwise loop.
	RenderNothing
)

// Outcome is the result of a guard evaluation.
type Outcome struct {
	Decision Decision
	// Path is the redirect target when Decision is Redirect.
	Path string
}

// Rule gates one route. A nil Allowed set marks a public route.
type Rule struct {
	// Pattern is the route path; segments wrapped in braces match
	// any value ("/products/edit/{id}").
	Pattern string
	// Allowed lists the roles that may render the route.
	Allowed []models.Role
	// RedirectTo is where a session with a disallowed role is sent.
	RedirectTo string
	// Fallback is where the anonymous are sent.
	Fallback string
}

const loginPath = "/login"

// Table is the full client-side route surface. Every guarded route of
// the admin UI appears here exactly once.
var Table = []Rule{
	{Pattern: "/login"},
	{Pattern: "/register"},
	{Pattern: "/forgot-password"},
	{Pattern: "/reset-password"},

	{Pattern: "/", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: "/staff", Fallback: loginPath},
	{Pattern: "/staff", Allowed: []models.Role{models.RoleStaff}, RedirectTo: "/", Fallback: loginPath},

	{Pattern: "/products", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/products/add", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/products/edit/{id}", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/stocks", Allowed: []models.Role{models.RolePharmacist, models.RoleStaff}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/stocks/add", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/stocks/edit/{id}", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/sales", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/sales/add", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/sales/edit/{id}", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/suppliers", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/suppliers/add", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/suppliers/edit/{id}", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/reports", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/users", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/users/add", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/users/update/{id}", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/out-of-stock", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/expiring", Allowed: []models.Role{models.RolePharmacist}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/transactions", Allowed: []models.Role{models.RolePharmacist, models.RoleStaff}, RedirectTo: loginPath, Fallback: loginPath},

	{Pattern: "/staff-stocks", Allowed: []models.Role{models.RoleStaff}, RedirectTo: loginPath, Fallback: loginPath},
	{Pattern: "/sales-add", Allowed: []models.Role{models.RoleStaff}, RedirectTo: loginPath, Fallback: loginPath},
}

// Match finds the rule for a concrete request path.
func Match(path string) (Rule, bool) {
	for _, rule := range Table {
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	cs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(cs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if cs[i] == "" {
				return false
			}
			continue
		}
		if seg != cs[i] {
			return false
		}
	}
	return true
}

// Decide evaluates the guard for one navigation. It is a pure
// function of (session, rule, current path) and is re-evaluated on
// every request.
func Decide(session *models.Session, rule Rule, currentPath string) Outcome {
	if rule.Allowed == nil {
		return Outcome{Decision: Render}
	}
	if session == nil || !session.Role.Valid() {
		return Outcome{Decision: Redirect, Path: rule.Fallback}
	}
	for _, role := range rule.Allowed {
		if session.Role == role {
			return Outcome{Decision: Render}
		}
	}
	if currentPath != rule.RedirectTo {
		return Outcome{Decision: Redirect, Path: rule.RedirectTo}
	}
	return Outcome{Decision: RenderNothing}
}
