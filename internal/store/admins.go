package store

import (
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/models"
)

type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// FindByUsername fetches an admin by login name. Callers get
// gorm.ErrRecordNotFound when no such admin exists.
func (s *AdminStore) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) Create(admin *models.Admin) error {
	return s.db.Create(admin).Error
}
