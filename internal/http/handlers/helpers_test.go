package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"modaville/internal/config"
	"modaville/internal/http/handlers"
	"modaville/internal/repos"
	"modaville/internal/tasks"
)

const testHashSecret = "super-secret"

func newTestApp(t *testing.T) (*fiber.App, *handlers.Deps, *sqlx.DB, *tasks.Runner) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	runner := tasks.New(8)
	t.Cleanup(runner.Close)

	cfg := config.Config{
		Port:      "0",
		MediaDir:  t.TempDir(),
		JWTSecret: "test-secret",
		Payment: config.Payment{
			TmnCode:    "TESTTMN",
			HashSecret: testHashSecret,
			GatewayURL: "https://gw.example/paymentv2/vpcpay.html",
			ReturnURL:  "http://localhost:8080/vnpay_return",
		},
	}

	app := fiber.New()
	deps := handlers.NewDeps(db, cfg, runner)
	handlers.RegisterRoutes(app, deps)
	return app, deps, db, runner
}

func jsonReq(method, path string, body any, token string) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/api/auth/login", fiber.Map{
		"email": email, "password": password,
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned no token")
	}
	return body.Token
}
