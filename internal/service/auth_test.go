package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/models"
	"github.com/anishrjn/pressroom/internal/service"
	"github.com/anishrjn/pressroom/internal/store"
)

func newAuth(t *testing.T) (*service.Auth, *store.AdminStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	admins := store.NewAdminStore(db)
	return service.NewAuth(admins), admins, db
}

func TestCreateAdminHashesPassword(t *testing.T) {
	auth, admins, _ := newAuth(t)

	created, err := auth.CreateAdmin("admin@example.com", "s3cret", "Admin")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", created.Password)

	stored, err := admins.FindByUsername("admin@example.com")
	require.NoError(t, err)
	assert.NotContains(t, stored.Password, "s3cret")
}

func TestValidateAdmin(t *testing.T) {
	auth, _, _ := newAuth(t)

	_, err := auth.CreateAdmin("admin@example.com", "s3cret", "Admin")
	require.NoError(t, err)

	profile, err := auth.ValidateAdmin("admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", profile.Username)
	assert.Equal(t, "Admin", profile.Name)
}

func TestValidateAdminWrongPassword(t *testing.T) {
	auth, _, _ := newAuth(t)

	_, err := auth.CreateAdmin("admin@example.com", "s3cret", "Admin")
	require.NoError(t, err)

	_, err = auth.ValidateAdmin("admin@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateAdminUnknownUser(t *testing.T) {
	auth, _, _ := newAuth(t)

	_, err := auth.ValidateAdmin("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateAdminInactive(t *testing.T) {
	auth, _, db := newAuth(t)

	created, err := auth.CreateAdmin("admin@example.com", "s3cret", "Admin")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Admin{}).Where("id = ?", created.ID).Update("is_active", false).Error)

	_, err = auth.ValidateAdmin("admin@example.com", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
