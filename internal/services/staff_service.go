package services

import (
	"encoding/json"
	"errors"

	"modaville/internal/domain"
	"modaville/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadRole = errors.New("role must be STAFF or ADMIN")

type StaffService struct {
	Users *repos.UserRepo
}

func NewStaffService(users *repos.UserRepo) *StaffService { return &StaffService{Users: users} }

type StaffInput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (s *StaffService) Create(creator *domain.User, in StaffInput) (*domain.User, error) {
	if in.Role != domain.RoleStaff && in.Role != domain.RoleAdmin {
		return nil, ErrBadRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	perms, _ := json.Marshal(in.Permissions)
	u := &domain.User{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Hash:            string(hash),
		Role:            in.Role,
		PermissionsJSON: string(perms),
		IsActive:        true,
		CreatedBy:       creator.ID,
	}
	if err := s.Users.Create(u); err != nil {
		if repos.IsDuplicateEmail(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

type StaffUpdate struct {
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	IsActive     *bool    `json:"isActive"`
	LockedReason string   `json:"lockedReason"`
}

func (s *StaffService) Update(id string, in StaffUpdate) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, err
	}
	role := u.Role
	if in.Role != "" {
		if in.Role != domain.RoleStaff && in.Role != domain.RoleAdmin {
			return nil, ErrBadRole
		}
		role = in.Role
	}
	permsJSON := u.PermissionsJSON
	if in.Permissions != nil {
		b, _ := json.Marshal(in.Permissions)
		permsJSON = string(b)
	}
	active := u.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}
	locked := u.LockedReason
	if !active && in.LockedReason != "" {
		locked = in.LockedReason
	}
	if active {
		locked = ""
	}
	if err := s.Users.UpdateStaff(id, role, permsJSON, active, locked); err != nil {
		return nil, err
	}
	return s.Users.ByID(id)
}

func (s *StaffService) List() ([]domain.User, error) {
	return s.Users.ListStaff()
}
