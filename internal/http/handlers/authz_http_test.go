package handlers_test

import (
	"net/http"
	"testing"
)

// The staff seed account has manage_product/order/invoice but not
// manage_staff, so the back-office staff routes are a clean split point.
func TestPermissionGate(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	// No token.
	resp, err := app.Test(jsonReq("GET", "/api/admin/staff", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", resp.StatusCode)
	}

	// Garbage token.
	resp, err = app.Test(jsonReq("GET", "/api/admin/staff", nil, "not-a-token"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", resp.StatusCode)
	}

	customer := login(t, app, "mai@modaville.test", "Passw0rd!")
	staff := login(t, app, "staff@modaville.test", "Passw0rd!")
	admin := login(t, app, "admin@modaville.test", "Passw0rd!")

	for _, tc := range []struct {
		name, token, path string
		want              int
	}{
		{"customer denied staff list", customer, "/api/admin/staff", http.StatusForbidden},
		{"staff without grant denied", staff, "/api/admin/staff", http.StatusForbidden},
		{"admin bypasses grants", admin, "/api/admin/staff", http.StatusOK},
		{"staff granted invoices", staff, "/api/invoices", http.StatusOK},
		{"customer denied invoices", customer, "/api/invoices", http.StatusForbidden},
		{"customer denied audit log", customer, "/api/admin/audit-logs", http.StatusForbidden},
		{"admin reads audit log", admin, "/api/admin/audit-logs", http.StatusOK},
		{"customer may read own cart", customer, "/api/cart", http.StatusOK},
	} {
		resp, err := app.Test(jsonReq("GET", tc.path, nil, tc.token))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, resp.StatusCode)
		}
	}
}

func TestLockedAccountTokenStopsWorking(t *testing.T) {
	app, _, db, _ := newTestApp(t)

	token := login(t, app, "mai@modaville.test", "Passw0rd!")
	resp, err := app.Test(jsonReq("GET", "/api/cart", nil, token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 before lock, got %d", resp.StatusCode)
	}

	db.MustExec(`UPDATE users SET is_active = 0 WHERE id = 'u-mai'`)

	resp, err = app.Test(jsonReq("GET", "/api/cart", nil, token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("locked account token must be rejected, got %d", resp.StatusCode)
	}
}
