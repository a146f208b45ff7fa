package repos_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"modaville/internal/domain"
	"modaville/internal/repos"
)

func TestAuditLogsAreImmutable(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repos.NewAuditRepo(db)
	entry := &domain.AuditLog{
		ID:         "a-001",
		ActorID:    "u-staff",
		ActorEmail: "staff@modaville.test",
		Action:     "put.api.updateOrder",
		Method:     "PUT",
		Path:       "/api/updateOrder/X",
		StatusCode: 200,
	}
	if err := repo.Insert(entry); err != nil {
		t.Fatal(err)
	}

	// The storage layer itself rejects rewrites, not just the repo API.
	if _, err := db.Exec(`UPDATE audit_logs SET action = 'tampered' WHERE id = 'a-001'`); err == nil {
		t.Fatal("UPDATE on audit_logs should be aborted by trigger")
	}
	if _, err := db.Exec(`DELETE FROM audit_logs WHERE id = 'a-001'`); err == nil {
		t.Fatal("DELETE on audit_logs should be aborted by trigger")
	}

	got, err := repo.Get("a-001")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != "put.api.updateOrder" {
		t.Fatalf("entry changed despite trigger: %+v", got)
	}
}

func TestAuditListFilters(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repos.NewAuditRepo(db)
	seed := []domain.AuditLog{
		{ID: "a-1", ActorID: "u-staff", Action: "post.api.createsp", ResourceType: "product"},
		{ID: "a-2", ActorID: "u-staff", Action: "put.api.updateOrder", ResourceType: "order"},
		{ID: "a-3", ActorID: "u-admin", Action: "put.api.updateOrder", ResourceType: "order"},
	}
	for i := range seed {
		if err := repo.Insert(&seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	byActor, err := repo.List(repos.AuditFilter{ActorID: "u-staff"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byActor) != 2 {
		t.Fatalf("want 2 entries for u-staff, got %d", len(byActor))
	}

	byBoth, err := repo.List(repos.AuditFilter{ActorID: "u-admin", Action: "put.api.updateOrder"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byBoth) != 1 || byBoth[0].ID != "a-3" {
		t.Fatalf("bad combined filter result: %+v", byBoth)
	}

	byResource, err := repo.List(repos.AuditFilter{ResourceType: "order", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(byResource) != 1 {
		t.Fatalf("limit not applied, got %d", len(byResource))
	}
}
