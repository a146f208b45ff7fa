package domain

// AuditLog records who did what to which resource. Rows are write-once:
// the persistence layer rejects any UPDATE or DELETE after insert.
type AuditLog struct {
	ID           string `db:"id" json:"id"`
	ActorID      string `db:"actor_id" json:"actorId"`
	ActorEmail   string `db:"actor_email" json:"actorEmail"`
	Action       string `db:"action" json:"action"`
	ResourceType string `db:"resource_type" json:"resourceType"`
	ResourceID   string `db:"resource_id" json:"resourceId"`
	Method       string `db:"method" json:"method"`
	Path         string `db:"path" json:"path"`
	StatusCode   int    `db:"status_code" json:"statusCode"`
	DetailJSON   string `db:"detail_json" json:"detail,omitempty"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}
