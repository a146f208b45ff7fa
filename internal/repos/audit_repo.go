package repos

import (
	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

// AuditRepo is append-only by construction: it exposes no update or
// delete, and schema triggers abort any UPDATE/DELETE that reaches the
// database from elsewhere.
type AuditRepo struct{ db *sqlx.DB }

func NewAuditRepo(db *sqlx.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Insert(e *domain.AuditLog) error {
	_, err := r.db.Exec(`
	  INSERT INTO audit_logs(id, actor_id, actor_email, action, resource_type, resource_id, method, path, status_code, detail_json)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, e.ID, e.ActorID, e.ActorEmail, e.Action, e.ResourceType, e.ResourceID, e.Method, e.Path, e.StatusCode, e.DetailJSON)
	return err
}

type AuditFilter struct {
	ActorID      string
	Action       string
	ResourceType string
	Limit        int
}

func (r *AuditRepo) List(f AuditFilter) ([]domain.AuditLog, error) {
	where := `1=1`
	args := []any{}
	if f.ActorID != "" {
		where += ` AND actor_id = ?`
		args = append(args, f.ActorID)
	}
	if f.Action != "" {
		where += ` AND action = ?`
		args = append(args, f.Action)
	}
	if f.ResourceType != "" {
		where += ` AND resource_type = ?`
		args = append(args, f.ResourceType)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 200
	}
	args = append(args, limit)

	var out []domain.AuditLog
	err := r.db.Select(&out, `
	  SELECT id, actor_id, actor_email, action, resource_type, resource_id, method, path, status_code, detail_json, created_at
	  FROM audit_logs
	  WHERE `+where+`
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, args...)
	return out, err
}

func (r *AuditRepo) Get(id string) (domain.AuditLog, error) {
	var e domain.AuditLog
	err := r.db.Get(&e, `
	  SELECT id, actor_id, actor_email, action, resource_type, resource_id, method, path, status_code, detail_json, created_at
	  FROM audit_logs WHERE id = ?
	`, id)
	return e, err
}
