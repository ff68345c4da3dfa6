package nav_test

import (
	"testing"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/nav"
)

func session(role models.Role) *models.Session {
	return &models.Session{ID: "s", Role: role, Name: "n", Token: "t"}
}

func TestDecide_RoleTable(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		session  *models.Session
		decision nav.Decision
		redirect string
	}{
		{"public route anonymous", "/login", nil, nav.Render, ""},
		{"public route authenticated", "/register", session(models.RoleStaff), nav.Render, ""},

		{"dashboard anonymous", "/", nil, nav.Redirect, "/login"},
		{"dashboard pharmacist", "/", session(models.RolePharmacist), nav.Render, ""},
		{"dashboard staff", "/", session(models.RoleStaff), nav.Redirect, "/staff"},

		{"staff home pharmacist", "/staff", session(models.RolePharmacist), nav.Redirect, "/"},
		{"staff home staff", "/staff", session(models.RoleStaff), nav.Render, ""},

		{"products staff", "/products", session(models.RoleStaff), nav.Redirect, "/login"},
		{"products pharmacist", "/products", session(models.RolePharmacist), nav.Render, ""},
		{"product edit param", "/products/edit/42", session(models.RolePharmacist), nav.Render, ""},

		{"stocks shared staff", "/stocks", session(models.RoleStaff), nav.Render, ""},
		{"stocks shared pharmacist", "/stocks", session(models.RolePharmacist), nav.Render, ""},
		{"transactions shared staff", "/transactions", session(models.RoleStaff), nav.Render, ""},

		{"staff stocks pharmacist", "/staff-stocks", session(models.RolePharmacist), nav.Redirect, "/login"},
		{"sales-add staff", "/sales-add", session(models.RoleStaff), nav.Render, ""},
		{"sales-add anonymous", "/sales-add", nil, nav.Redirect, "/login"},

		{"reports pharmacist", "/reports", session(models.RolePharmacist), nav.Render, ""},
		{"users staff", "/users", session(models.RoleStaff), nav.Redirect, "/login"},
		{"expiring pharmacist", "/expiring", session(models.RolePharmacist), nav.Render, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := nav.Match(tt.path)
			if !ok {
				t.Fatalf("no rule for %s", tt.path)
			}
			out := nav.Decide(tt.session, rule, tt.path)
			if out.Decision != tt.decision {
				t.Fatalf("decision = %v; want %v", out.Decision, tt.decision)
			}
			if out.Decision == nav.Redirect && out.Path != tt.redirect {
				t.Errorf("redirect = %q; want %q", out.Path, tt.redirect)
			}
		})
	}
}

// A staff session already sitting on the pharmacist redirect target
// must render nothing rather than loop.
func TestDecide_NoRedirectLoop(t *testing.T) {
	rule, ok := nav.Match("/")
	if !ok {
		t.Fatal("no rule for /")
	}
	// Simulate evaluating the dashboard rule while already at /staff.
	out := nav.Decide(session(models.RoleStaff), rule, "/staff")
	if out.Decision != nav.RenderNothing {
		t.Fatalf("decision = %v; want RenderNothing", out.Decision)
	}
}

func TestDecide_InvalidRoleTreatedAsAnonymous(t *testing.T) {
	rule, _ := nav.Match("/products")
	out := nav.Decide(&models.Session{ID: "s", Role: "intern"}, rule, "/products")
	if out.Decision != nav.Redirect || out.Path != "/login" {
		t.Fatalf("got %+v; want redirect to /login", out)
	}
}

func TestMatch_UnknownPath(t *testing.T) {
	if _, ok := nav.Match("/nope"); ok {
		t.Fatal("expected no rule for unknown path")
	}
}

func TestMatch_CoversEveryRoute(t *testing.T) {
	paths := []string{"/", "/staff", "/products", "/products/add", "/products/edit/7",
		"/stocks", "/stocks/add", "/stocks/edit/7", "/sales", "/sales/add", "/sales/edit/7",
		"/suppliers", "/suppliers/add", "/suppliers/edit/7", "/reports",
		"/users", "/users/add", "/users/update/7", "/out-of-stock", "/expiring",
		"/transactions", "/staff-stocks", "/sales-add"}
	for _, p := range paths {
		if _, ok := nav.Match(p); !ok {
			t.Errorf("no rule for %s", p)
		}
	}
}
