// Package service owns the post lifecycle rules: which rows each operation
// may see, how soft delete and restore transition deleted_at, and the
// pagination arithmetic for list views.
package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/models"
	"github.com/anishrjn/pressroom/internal/store"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// NotFoundError reports that the target post was absent under the
// operation's visibility rule. A soft-deleted row and a missing row look
// identical to every operation except restore and force delete.
type NotFoundError struct {
	ID      uint
	Deleted bool // true when the lookup was for a soft-deleted post
}

func (e *NotFoundError) Error() string {
	if e.Deleted {
		return fmt.Sprintf("deleted post with ID %d not found", e.ID)
	}
	return fmt.Sprintf("post with ID %d not found", e.ID)
}

// PageQuery carries optional list parameters. Page and Limit at zero mean
// "no pagination requested"; Search filters title/detail.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q PageQuery) paginated() bool {
	return q.Page > 0 || q.Limit > 0
}

// PageMeta is the pagination metadata attached to a paginated list result.
type PageMeta struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// PostList is the single result shape for every list operation. Meta is
// nil when the caller did not ask for pagination.
type PostList struct {
	Data []models.Post `json:"data"`
	Meta *PageMeta     `json:"meta,omitempty"`
}

type CreatePostInput struct {
	Title    string
	Detail   string
	Cover    *string
	IsActive *bool
}

// UpdatePostInput holds a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	Title    *string
	Detail   *string
	Cover    *string
	IsActive *bool
}

type Posts struct {
	store *store.PostStore
}

func NewPosts(s *store.PostStore) *Posts {
	return &Posts{store: s}
}

// Create stores a new post. Titles are not unique; posts default to
// active when the flag is not supplied.
func (p *Posts) Create(in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:    in.Title,
		Detail:   in.Detail,
		Cover:    in.Cover,
		IsActive: true,
	}
	if in.IsActive != nil {
		post.IsActive = *in.IsActive
	}
	if err := p.store.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// FindOne fetches a live post. Soft-deleted rows fail NotFound exactly
// like absent ones; this is the guard every plain mutation routes through.
func (p *Posts) FindOne(id uint) (*models.Post, error) {
	post, err := p.store.GetActive(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return post, nil
}

// FindAnyOne fetches a post by id regardless of soft-delete state. Only
// the admin detail view uses it; the API stays behind FindOne's rule.
func (p *Posts) FindAnyOne(id uint) (*models.Post, error) {
	post, err := p.store.GetAny(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return post, nil
}

// FindAll lists live posts, newest first.
func (p *Posts) FindAll(q PageQuery) (*PostList, error) {
	return p.list(store.ActiveOnly, q)
}

// FindAllWithDeleted lists every post regardless of soft-delete state.
func (p *Posts) FindAllWithDeleted(q PageQuery) (*PostList, error) {
	return p.list(store.All, q)
}

// FindDeleted lists only soft-deleted posts, most recently deleted first.
func (p *Posts) FindDeleted(q PageQuery) (*PostList, error) {
	return p.list(store.DeletedOnly, q)
}

func (p *Posts) list(vis store.Visibility, q PageQuery) (*PostList, error) {
	if !q.paginated() {
		posts, err := p.store.List(store.ListQuery{Visibility: vis, Search: q.Search})
		if err != nil {
			return nil, err
		}
		return &PostList{Data: posts}, nil
	}

	page, limit := normalizePage(q.Page, q.Limit)

	total, err := p.store.Count(vis, q.Search)
	if err != nil {
		return nil, err
	}
	posts, err := p.store.List(store.ListQuery{
		Visibility: vis,
		Search:     q.Search,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PostList{
		Data: posts,
		Meta: &PageMeta{
			Total:           total,
			Page:            page,
			Limit:           limit,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// Update applies the supplied fields to a live post. The FindOne guard
// means updating a soft-deleted post fails NotFound, same as a missing one.
func (p *Posts) Update(id uint, in UpdatePostInput) (*models.Post, error) {
	current, err := p.FindOne(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Detail != nil {
		fields["detail"] = *in.Detail
	}
	if in.Cover != nil {
		// Cover is a nullable column; an explicit empty string clears it.
		if *in.Cover == "" {
			fields["cover"] = nil
		} else {
			fields["cover"] = *in.Cover
		}
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) == 0 {
		return current, nil
	}

	if err := p.store.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return p.FindOne(id)
}

// Remove soft-deletes a live post. The store's conditional update makes
// the existence check and the write one statement, so a second Remove on
// the same id fails NotFound rather than rewriting the timestamp.
func (p *Posts) Remove(id uint) error {
	ok, err := p.store.SoftDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Restore brings a soft-deleted post back. Restoring a live post fails
// NotFound under the inverse visibility filter.
func (p *Posts) Restore(id uint) (*models.Post, error) {
	ok, err := p.store.Restore(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{ID: id, Deleted: true}
	}
	post, err := p.store.GetAny(id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ForceRemove permanently deletes the row, soft-deleted or not. This is
// the one irreversible operation.
func (p *Posts) ForceRemove(id uint) error {
	ok, err := p.store.HardDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return nil
}
