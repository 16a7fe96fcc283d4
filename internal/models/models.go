package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the content record managed by the admin. DeletedAt drives the
// soft-delete lifecycle: a nil value means the post is live, a timestamp
// means it is hidden from normal queries until restored.
type Post struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Detail    string         `gorm:"type:text;not null" json:"detail"`
	Cover     *string        `json:"cover"`
	IsActive  bool           `gorm:"not null" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

// Admin is the single privileged role for the web interface.
type Admin struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never expose
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
