package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"modaville/internal/repos"
	"modaville/internal/services"
	"modaville/internal/tasks"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newOrderSvc(t *testing.T, db *sqlx.DB) (*services.OrderService, *services.CartService, *tasks.Runner) {
	t.Helper()
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	invRepo := repos.NewInvoiceRepo(db)

	runner := tasks.New(8)
	t.Cleanup(runner.Close)

	invSvc := services.NewInvoiceService(invRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, cartRepo, invSvc, runner)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	return orderSvc, cartSvc, runner
}

func TestCartAddMergesMatchingLines(t *testing.T) {
	db := memdb(t)
	_, cartSvc, _ := newOrderSvc(t, db)

	cid := "u-mai"
	if err := cartSvc.Add(cid, "p-tee-001", "Black", "M", 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(cid, "p-tee-001", "Black", "M", 2); err != nil {
		t.Fatal(err)
	}
	// A different variant is its own line.
	if err := cartSvc.Add(cid, "p-tee-001", "White", "M", 1); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View(cid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 2 {
		t.Fatalf("want 2 cart lines, got %d: %+v", len(cv.Items), cv.Items)
	}
	for _, it := range cv.Items {
		if it.Color == "Black" && it.Qty != 3 {
			t.Fatalf("matching lines should merge to qty 3, got %d", it.Qty)
		}
	}
	want := 19.90 * 4
	if cv.Total < want-0.001 || cv.Total > want+0.001 {
		t.Fatalf("want total %.2f, got %.2f", want, cv.Total)
	}
}

func TestOrderCreateDecrementsStockAndClearsCart(t *testing.T) {
	db := memdb(t)
	orderSvc, cartSvc, _ := newOrderSvc(t, db)
	prodRepo := repos.NewProductRepo(db)

	cid := "u-mai"
	if err := cartSvc.Add(cid, "p-tee-001", "Black", "M", 2); err != nil {
		t.Fatal(err)
	}

	o, err := orderSvc.Create(cid, services.CreateOrderInput{
		RecipientName: "Mai Tran",
		Address:       "12 Elm St",
		Phone:         "0900000003",
		Lines: []services.OrderLineInput{
			{ProductID: "p-tee-001", Qty: 2, Color: "Black", Size: "M"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if o.Code == "" {
		t.Fatal("no order code")
	}
	want := 19.90 * 2
	if o.Total < want-0.001 || o.Total > want+0.001 {
		t.Fatalf("want total %.2f, got %.2f", want, o.Total)
	}

	p, err := prodRepo.Get("p-tee-001")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 118 || p.Sold != 2 {
		t.Fatalf("want stock=118 sold=2, got stock=%d sold=%d", p.Stock, p.Sold)
	}

	cv, err := cartSvc.View(cid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be cleared after checkout, has %d lines", len(cv.Items))
	}
}

func TestOrderCreateInsufficientStockRollsBack(t *testing.T) {
	db := memdb(t)
	orderSvc, _, _ := newOrderSvc(t, db)
	prodRepo := repos.NewProductRepo(db)

	// Denim jacket is seeded with stock 35.
	_, err := orderSvc.Create("u-mai", services.CreateOrderInput{
		RecipientName: "Mai Tran",
		Address:       "12 Elm St",
		Phone:         "0900000003",
		Lines: []services.OrderLineInput{
			{ProductID: "p-tee-001", Qty: 1},
			{ProductID: "p-jkt-001", Qty: 36},
		},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	// The whole transaction rolled back, including the first line.
	p, err := prodRepo.Get("p-tee-001")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 120 || p.Sold != 0 {
		t.Fatalf("rollback failed: stock=%d sold=%d", p.Stock, p.Sold)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order should exist, got %d", n)
	}
}

func TestOrderCreateUsesDiscountedPriceSnapshot(t *testing.T) {
	db := memdb(t)
	orderSvc, _, _ := newOrderSvc(t, db)

	db.MustExec(`UPDATE products SET discount = 5.00 WHERE id = 'p-tee-001'`)

	o, err := orderSvc.Create("u-mai", services.CreateOrderInput{
		RecipientName: "Mai Tran",
		Address:       "12 Elm St",
		Phone:         "0900000003",
		Lines:         []services.OrderLineInput{{ProductID: "p-tee-001", Qty: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := 19.90 - 5.00
	if o.Total < want-0.001 || o.Total > want+0.001 {
		t.Fatalf("want discounted total %.2f, got %.2f", want, o.Total)
	}
}

func TestOrderCreateRejectsEmptyAndUnknown(t *testing.T) {
	db := memdb(t)
	orderSvc, _, _ := newOrderSvc(t, db)

	if _, err := orderSvc.Create("u-mai", services.CreateOrderInput{}); err != services.ErrEmptyOrder {
		t.Fatalf("want ErrEmptyOrder, got %v", err)
	}
	_, err := orderSvc.Create("u-mai", services.CreateOrderInput{
		RecipientName: "Mai Tran", Address: "12 Elm St", Phone: "0900000003",
		Lines: []services.OrderLineInput{{ProductID: "nope", Qty: 1}},
	})
	if err != services.ErrUnknownProduct {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
}
