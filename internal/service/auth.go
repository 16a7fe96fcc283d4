package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/models"
	"github.com/anishrjn/pressroom/internal/store"
)

// ErrInvalidCredentials covers unknown username, deactivated account and
// bad password alike; login failures are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminProfile is what gets stashed in the session after login. It never
// carries the password hash.
type AdminProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Auth struct {
	store *store.AdminStore
}

func NewAuth(s *store.AdminStore) *Auth {
	return &Auth{store: s}
}

// ValidateAdmin checks a username/password pair against the stored bcrypt
// hash. Verification is compare-only; the hash is never reversed.
func (a *Auth) ValidateAdmin(username, password string) (*AdminProfile, error) {
	admin, err := a.store.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &AdminProfile{ID: admin.ID, Username: admin.Username, Name: admin.Name}, nil
}

// CreateAdmin stores a new admin with a bcrypt-hashed password.
func (a *Auth) CreateAdmin(username, password, name string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username: username,
		Password: string(hash),
		Name:     name,
		IsActive: true,
	}
	if err := a.store.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}
