package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"modaville/internal/domain"
)

func TestReviewModerationThroughAPI(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	customer := login(t, app, "mai@modaville.test", "Passw0rd!")
	admin := login(t, app, "admin@modaville.test", "Passw0rd!")

	resp, err := app.Test(jsonReq("POST", "/api/reviews", fiber.Map{
		"productId": "p-tee-001", "rating": 5, "comment": "soft fabric",
	}, customer))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit review: status %d", resp.StatusCode)
	}

	// Anyone can read; the new review is pending.
	var list struct {
		Reviews []domain.Review `json:"reviews"`
	}
	resp, err = app.Test(jsonReq("GET", "/api/reviews/p-tee-001", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &list)
	if len(list.Reviews) != 1 || list.Reviews[0].Status != domain.ReviewPending {
		t.Fatalf("bad review list: %+v", list.Reviews)
	}

	// Customers cannot moderate.
	resp, err = app.Test(jsonReq("PUT", "/api/reviews/moderate", fiber.Map{
		"productId": "p-tee-001", "customerId": "u-mai", "status": "APPROVED",
	}, customer))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer moderate: want 403, got %d", resp.StatusCode)
	}

	// Admin approval feeds the product aggregate.
	resp, err = app.Test(jsonReq("PUT", "/api/reviews/moderate", fiber.Map{
		"productId": "p-tee-001", "customerId": "u-mai", "status": "APPROVED",
	}, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin moderate: status %d", resp.StatusCode)
	}
	var p domain.Product
	resp, err = app.Test(jsonReq("GET", "/api/getsp/p-tee-001", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &p)
	if p.RatingAvg != 5 || p.RatingCount != 1 {
		t.Fatalf("aggregate not updated: avg=%v count=%d", p.RatingAvg, p.RatingCount)
	}

	resp, err = app.Test(jsonReq("PUT", "/api/reviews/moderate", fiber.Map{
		"productId": "p-tee-001", "customerId": "nobody", "status": "APPROVED",
	}, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("moderating missing review: want 404, got %d", resp.StatusCode)
	}
}

func TestWishlistToggle(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	customer := login(t, app, "mai@modaville.test", "Passw0rd!")

	var tog struct {
		Liked bool `json:"liked"`
	}
	resp, err := app.Test(jsonReq("POST", "/api/wishlist/toggle", fiber.Map{"productId": "p-tee-001"}, customer))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &tog)
	if !tog.Liked {
		t.Fatal("first toggle should like")
	}

	resp, err = app.Test(jsonReq("GET", "/api/wishlist", nil, customer))
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Items []struct {
			ProductID string `json:"productId"`
		} `json:"items"`
	}
	decode(t, resp, &list)
	if len(list.Items) != 1 {
		t.Fatalf("want 1 wishlist item, got %d", len(list.Items))
	}

	resp, err = app.Test(jsonReq("POST", "/api/wishlist/toggle", fiber.Map{"productId": "p-tee-001"}, customer))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &tog)
	if tog.Liked {
		t.Fatal("second toggle should unlike")
	}

	// Wishlist is per-account, never anonymous.
	resp, err = app.Test(jsonReq("GET", "/api/wishlist", nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous wishlist: want 401, got %d", resp.StatusCode)
	}
}
