package repos

import (
	"strings"

	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,name,email,phone,password_hash,role,permissions_json,is_active,locked_reason,created_by,created_at,COALESCE(updated_at,'') AS updated_at`

// IsDuplicateEmail reports whether an insert failed on email uniqueness.
// An exact-case duplicate trips the column constraint, a case-variant one
// trips the LOWER(email) index; SQLite words the two differently.
func IsDuplicateEmail(err error) bool {
	if err == nil || !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return false
	}
	return strings.Contains(err.Error(), "users.email") ||
		strings.Contains(err.Error(), "idx_users_email")
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,phone,password_hash,role,permissions_json,is_active,locked_reason,created_by)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`, u.ID, u.Name, u.Email, u.Phone, u.Hash, u.Role, u.PermissionsJSON, u.IsActive, u.LockedReason, u.CreatedBy)
	return err
}

// ListStaff returns non-customer accounts for the back office.
func (r *UserRepo) ListStaff() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users WHERE role != 'CUSTOMER' ORDER BY email`)
	return out, err
}

// UpdateStaff replaces role, permissions and active/locked state.
func (r *UserRepo) UpdateStaff(id, role, permissionsJSON string, isActive bool, lockedReason string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET role=?, permissions_json=?, is_active=?, locked_reason=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, role, permissionsJSON, isActive, lockedReason, id)
	return err
}
