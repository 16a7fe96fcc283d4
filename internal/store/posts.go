// Package store is the query-building boundary in front of GORM. It knows
// the three visibility classes for posts (active, deleted-only, everything)
// and nothing about request handling or lifecycle rules.
package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/models"
)

// Visibility selects which rows a query may see, keyed off deleted_at.
type Visibility int

const (
	// ActiveOnly hides soft-deleted rows (GORM's default scope).
	ActiveOnly Visibility = iota
	// DeletedOnly shows soft-deleted rows exclusively.
	DeletedOnly
	// All ignores deleted_at entirely.
	All
)

// ListQuery describes one list round trip. Offset/Limit are applied only
// when Limit > 0; Search matches title or detail case-insensitively.
type ListQuery struct {
	Visibility Visibility
	Search     string
	Offset     int
	Limit      int
}

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// scoped returns a query seeded with the visibility predicate.
func (s *PostStore) scoped(vis Visibility) *gorm.DB {
	switch vis {
	case DeletedOnly:
		return s.db.Unscoped().Where("deleted_at IS NOT NULL")
	case All:
		return s.db.Unscoped()
	default:
		return s.db
	}
}

func withSearch(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	pattern := "%" + escapeLike(search) + "%"
	return q.Where("LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(detail) LIKE LOWER(?) ESCAPE '\\'", pattern, pattern)
}

// escapeLike neutralizes LIKE metacharacters so the search term is matched
// as a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// List fetches posts under the query's visibility. Active and unfiltered
// views order by created_at desc; the deleted-only view orders by the
// moment of deletion instead.
func (s *PostStore) List(q ListQuery) ([]models.Post, error) {
	order := "created_at desc"
	if q.Visibility == DeletedOnly {
		order = "deleted_at desc"
	}

	query := withSearch(s.scoped(q.Visibility).Model(&models.Post{}), q.Search).Order(order)
	if q.Limit > 0 {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of rows the same List call would match before
// offset/limit are applied.
func (s *PostStore) Count(vis Visibility, search string) (int64, error) {
	var total int64
	err := withSearch(s.scoped(vis).Model(&models.Post{}), search).Count(&total).Error
	return total, err
}

// GetActive fetches a live post by id. Soft-deleted rows are invisible
// here; callers get gorm.ErrRecordNotFound for both absent and deleted.
func (s *PostStore) GetActive(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAny fetches a post by id regardless of soft-delete state.
func (s *PostStore) GetAny(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Unscoped().First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Create(post *models.Post) error {
	return s.db.Create(post).Error
}

// CreateBatch inserts posts in chunks. Used by the seeder only.
func (s *PostStore) CreateBatch(posts []models.Post, batchSize int) error {
	return s.db.CreateInBatches(posts, batchSize).Error
}

// UpdateFields applies a partial update to a live post. Only the supplied
// columns are touched; GORM refreshes updated_at alongside.
func (s *PostStore) UpdateFields(id uint, fields map[string]any) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

// SoftDelete stamps deleted_at on a live post. GORM emits the update with
// a `deleted_at IS NULL` condition, so the check and the write are one
// statement; the returned bool reports whether a row actually flipped.
func (s *PostStore) SoftDelete(id uint) (bool, error) {
	res := s.db.Delete(&models.Post{}, id)
	return res.RowsAffected > 0, res.Error
}

// Restore clears deleted_at on a soft-deleted post, conditional on the row
// actually being deleted. Restoring a live post affects zero rows.
func (s *PostStore) Restore(id uint) (bool, error) {
	res := s.db.Unscoped().Model(&models.Post{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected > 0, res.Error
}

// HardDelete permanently removes the row, soft-deleted or not.
func (s *PostStore) HardDelete(id uint) (bool, error) {
	res := s.db.Unscoped().Delete(&models.Post{}, id)
	return res.RowsAffected > 0, res.Error
}

// Purge wipes the posts table. Used by the seeder only.
func (s *PostStore) Purge() error {
	return s.db.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error
}
