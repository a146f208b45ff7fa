package domain

import "encoding/json"

const (
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
	RoleAdmin    = "ADMIN"
)

// Permission strings checked against an account's granted set.
const (
	PermManageProduct  = "manage_product"
	PermManageOrder    = "manage_order"
	PermManageInvoice  = "manage_invoice"
	PermManageStaff    = "manage_staff"
	PermViewAuditLog   = "view_audit_log"
	PermModerateReview = "moderate_review"
)

type User struct {
	ID              string `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Email           string `db:"email" json:"email"`
	Phone           string `db:"phone" json:"phone"`
	Hash            string `db:"password_hash" json:"-"`
	Role            string `db:"role" json:"role"`
	PermissionsJSON string `db:"permissions_json" json:"-"`
	IsActive        bool   `db:"is_active" json:"isActive"`
	LockedReason    string `db:"locked_reason" json:"lockedReason,omitempty"`
	CreatedBy       string `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt       string `db:"created_at" json:"createdAt"`
	UpdatedAt       string `db:"updated_at" json:"-"`
}

func (u *User) Permissions() []string {
	var out []string
	if u.PermissionsJSON != "" {
		_ = json.Unmarshal([]byte(u.PermissionsJSON), &out)
	}
	return out
}

// Can is the single authorization predicate: admins satisfy every
// permission, inactive accounts satisfy none, everyone else needs the
// permission string in their granted set.
func (u *User) Can(perm string) bool {
	if u == nil || !u.IsActive {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions() {
		if p == perm {
			return true
		}
	}
	return false
}
