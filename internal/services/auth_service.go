package services

import (
	"errors"
	"time"

	"modaville/internal/domain"
	"modaville/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds      = errors.New("invalid email or password")
	ErrAccountLocked = errors.New("account is locked")
	ErrBadToken      = errors.New("invalid or expired token")
	ErrEmailTaken    = errors.New("email already registered")
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

// Register creates a customer account and logs it in.
func (s *AuthService) Register(name, email, phone, password string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           email,
		Phone:           phone,
		Hash:            string(hash),
		Role:            domain.RoleCustomer,
		PermissionsJSON: "[]",
		IsActive:        true,
	}
	if err := s.Users.Create(u); err != nil {
		if repos.IsDuplicateEmail(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	tok, err := s.mintToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if !u.IsActive {
		return nil, "", ErrAccountLocked
	}
	tok, err := s.mintToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) mintToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// UserFromToken verifies the bearer token and loads the live account, so
// lock-outs take effect on the next request rather than at token expiry.
func (s *AuthService) UserFromToken(tok string) (*domain.User, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBadToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrBadToken
	}
	u, err := s.Users.ByID(sub)
	if err != nil {
		return nil, ErrBadToken
	}
	if !u.IsActive {
		return nil, ErrAccountLocked
	}
	return u, nil
}
