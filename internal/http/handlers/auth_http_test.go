package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"modaville/internal/repos"
)

func TestRegisterAndLogin(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/auth/register", fiber.Map{
		"name":     "Linh Pham",
		"email":    "linh@example.com",
		"phone":    "0988111222",
		"password": "Sunny1Day",
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	var reg struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, resp, &reg)
	if reg.Token == "" || reg.User.Role != "CUSTOMER" {
		t.Fatalf("bad register response: %+v", reg)
	}

	// Weak password rejected before it reaches the service.
	resp, err = app.Test(jsonReq("POST", "/api/auth/register", fiber.Map{
		"name": "X Y", "email": "weak@example.com", "phone": "0988111223", "password": "short",
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("weak password: want 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("POST", "/api/auth/login", fiber.Map{
		"email": "linh@example.com", "password": "wrong-password",
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	login(t, app, "linh@example.com", "Sunny1Day")
}

func TestDuplicateEmailRejected(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	body := fiber.Map{
		"name": "Linh Pham", "email": "linh@example.com",
		"phone": "0988111222", "password": "Sunny1Day",
	}
	resp, err := app.Test(jsonReq("POST", "/api/auth/register", body, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first register: status %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("POST", "/api/auth/register", body, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("reused email: want 400, got %d", resp.StatusCode)
	}

	// Case variants collide too, via the LOWER(email) index.
	resp, err = app.Test(jsonReq("POST", "/api/auth/register", fiber.Map{
		"name": "Linh Pham", "email": "LINH@example.com",
		"phone": "0988111223", "password": "Sunny1Day",
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("case-variant email: want 400, got %d", resp.StatusCode)
	}

	// Staff provisioning hits the same guard.
	admin := login(t, app, "admin@modaville.test", "Passw0rd!")
	resp, err = app.Test(jsonReq("POST", "/api/admin/staff", fiber.Map{
		"name": "Shadow", "email": "mai@modaville.test", "phone": "0977000113",
		"password": "Shadow1Pass", "role": "STAFF",
	}, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("staff with taken email: want 400, got %d", resp.StatusCode)
	}
}

func TestLockedAccountCannotLogin(t *testing.T) {
	app, _, db, _ := newTestApp(t)

	db.MustExec(`UPDATE users SET is_active = 0, locked_reason = 'fraud review' WHERE id = 'u-mai'`)

	resp, err := app.Test(jsonReq("POST", "/api/auth/login", fiber.Map{
		"email": "mai@modaville.test", "password": "Passw0rd!",
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("locked account: want 401, got %d", resp.StatusCode)
	}
}

func TestAuditTrailRecordsMutationsWithoutPasswords(t *testing.T) {
	app, _, db, runner := newTestApp(t)

	login(t, app, "admin@modaville.test", "Passw0rd!")
	runner.Drain()

	entries, err := repos.NewAuditRepo(db).List(repos.AuditFilter{Action: "post.api.auth.login"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want one audit entry for login, got %d", len(entries))
	}
	e := entries[0]
	if e.Method != "POST" || e.StatusCode != http.StatusOK || e.ResourceType != "account" {
		t.Fatalf("bad audit entry: %+v", e)
	}
	if strings.Contains(e.DetailJSON, "Passw0rd!") || strings.Contains(e.DetailJSON, "password") {
		t.Fatalf("credentials leaked into audit detail: %s", e.DetailJSON)
	}
	if !strings.Contains(e.DetailJSON, "admin@modaville.test") {
		t.Fatalf("detail should keep non-sensitive fields: %s", e.DetailJSON)
	}

	// Reads are not audited.
	if resp, err := app.Test(jsonReq("GET", "/api/getallsp", nil, "")); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list products: %v %d", err, resp.StatusCode)
	}
	runner.Drain()
	all, err := repos.NewAuditRepo(db).List(repos.AuditFilter{})
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range all {
		if a.Method == "GET" {
			t.Fatalf("GET request was audited: %+v", a)
		}
	}
}
