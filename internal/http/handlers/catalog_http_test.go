package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"modaville/internal/domain"
)

func multipartReq(t *testing.T, method, path string, fields map[string]string, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCatalogPublicReads(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("GET", "/api/getallsp", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Products []domain.Product `json:"products"`
	}
	decode(t, resp, &list)
	if len(list.Products) != 3 {
		t.Fatalf("want 3 seeded products, got %d", len(list.Products))
	}

	resp, err = app.Test(jsonReq("GET", "/api/getallsp?q=denim", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &list)
	if len(list.Products) != 1 || list.Products[0].ID != "p-jkt-001" {
		t.Fatalf("search miss: %+v", list.Products)
	}

	resp, err = app.Test(jsonReq("GET", "/api/getsp/p-tee-001", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("getsp: status %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/api/getsp/no-such-product", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/api/categories", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	var cats struct {
		Categories []domain.Category `json:"categories"`
	}
	decode(t, resp, &cats)
	if len(cats.Categories) != 4 {
		t.Fatalf("want 4 seeded categories, got %d", len(cats.Categories))
	}
}

func TestProductWriteRequiresPermission(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	fields := map[string]string{
		"name":       "Linen Shirt",
		"categoryId": "tshirts",
		"price":      "45.00",
		"stock":      "10",
	}

	resp, err := app.Test(multipartReq(t, "POST", "/api/createsp", fields, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: want 401, got %d", resp.StatusCode)
	}

	customer := login(t, app, "mai@modaville.test", "Passw0rd!")
	resp, err = app.Test(multipartReq(t, "POST", "/api/createsp", fields, customer))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer create: want 403, got %d", resp.StatusCode)
	}

	staff := login(t, app, "staff@modaville.test", "Passw0rd!")
	resp, err = app.Test(multipartReq(t, "POST", "/api/createsp", fields, staff))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("staff create: want 201, got %d", resp.StatusCode)
	}
	var created domain.Product
	decode(t, resp, &created)
	if created.ID == "" || created.Code == "" || created.Price != 45 {
		t.Fatalf("bad created product: %+v", created)
	}

	// Soft delete hides it from the public list.
	resp, err = app.Test(jsonReq("DELETE", "/api/deletesp/"+created.ID, nil, staff))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("GET", "/api/getsp/"+created.ID, nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted product still visible: %d", resp.StatusCode)
	}
}

func TestProductUpdateValidation(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	staff := login(t, app, "staff@modaville.test", "Passw0rd!")

	resp, err := app.Test(multipartReq(t, "PUT", "/api/updatesp/p-tee-001", map[string]string{"price": "-3"}, staff))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative price: want 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(multipartReq(t, "PUT", "/api/updatesp/p-tee-001", map[string]string{"price": "21.50"}, staff))
	if err != nil {
		t.Fatal(err)
	}
	var updated domain.Product
	decode(t, resp, &updated)
	if updated.Price != 21.50 {
		t.Fatalf("price not updated: %+v", updated)
	}
	// Untouched fields survive the partial update.
	if updated.Name != "Classic Cotton Tee" || updated.Stock != 120 {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
}
