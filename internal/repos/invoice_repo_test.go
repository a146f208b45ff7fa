package repos_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"modaville/internal/domain"
	"modaville/internal/repos"
)

func testInvoice(id, code, orderCode string) *domain.Invoice {
	return &domain.Invoice{
		ID:            id,
		Code:          code,
		OrderCode:     orderCode,
		CustomerName:  "Mai Tran",
		Subtotal:      19.90,
		FinalAmount:   19.90,
		PaymentStatus: domain.InvoiceUnpaid,
		Status:        domain.InvoiceActive,
		CreatedType:   domain.InvoiceCreatedAuto,
	}
}

// Two generations racing for the same order: the loser's insert trips the
// unique order_code index and must be recognizable as such, so the caller
// can fall back to the winner's row.
func TestDuplicateOrderCodeInsertResolvesToWinner(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repos.NewInvoiceRepo(db)
	items := []domain.InvoiceItem{{ProductName: "Classic Tee", Qty: 1, Price: 19.90}}
	logEntry := domain.InvoiceLog{TS: "2026-08-31T10:00:00Z", Action: "create", Actor: "system"}

	if err := repo.CreateWithItems(testInvoice("inv-1", "INV-A", "31082026-AAAAAA"), items, logEntry); err != nil {
		t.Fatal(err)
	}

	err = repo.CreateWithItems(testInvoice("inv-2", "INV-B", "31082026-AAAAAA"), items, logEntry)
	if err == nil {
		t.Fatal("second insert for the same order code should fail")
	}
	if !repos.IsDuplicateOrder(err) {
		t.Fatalf("duplicate order_code not recognized: %v", err)
	}

	winner, err := repo.ByOrderCode("31082026-AAAAAA")
	if err != nil {
		t.Fatal(err)
	}
	if winner.ID != "inv-1" {
		t.Fatalf("want winner inv-1, got %s", winner.ID)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM invoices WHERE order_code = '31082026-AAAAAA'`); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("want exactly one invoice for the order, got %d", count)
	}
}

func TestIsDuplicateOrderIgnoresOtherErrors(t *testing.T) {
	if repos.IsDuplicateOrder(nil) {
		t.Fatal("nil error reported as duplicate")
	}
	if repos.IsDuplicateOrder(errors.New("UNIQUE constraint failed: invoices.code")) {
		t.Fatal("code-collision error reported as order duplicate")
	}
}
