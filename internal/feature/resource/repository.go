// Package resource implements the owner-scoped CRUD pattern shared by every
// card sub-resource, parameterized over the entity type instead of copied per
// resource. Owner-scoped reads filter by user_id; the admin variants are
// unscoped.
package resource

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the id (and owner, if scoped).
// Expected absence is an explicit return value, never a panic.
var ErrNotFound = errors.New("resource not found")

// Repository provides gorm-backed persistence for one entity type.
// T must have ID and UserID columns.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a repository bound to the given gorm connection.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Create persists a new entity.
func (r *Repository[T]) Create(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByOwner returns every entity owned by ownerID, newest first.
func (r *Repository[T]) ListByOwner(ctx context.Context, ownerID uint) ([]T, error) {
	var out []T
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByOwner returns the entity only if it belongs to ownerID.
func (r *Repository[T]) FindByOwner(ctx context.Context, id, ownerID uint) (*T, error) {
	var e T
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Save persists in-place mutations.
func (r *Repository[T]) Save(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// DeleteByOwner removes the entity only if it belongs to ownerID.
func (r *Repository[T]) DeleteByOwner(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every entity regardless of owner. Admin mirror.
func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	var out []T
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindAny returns the entity without an owner check. Admin mirror.
func (r *Repository[T]) FindAny(ctx context.Context, id uint) (*T, error) {
	var e T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteAny removes the entity without an owner check. Admin mirror.
func (r *Repository[T]) DeleteAny(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByOwner removes every entity owned by ownerID. Used by the admin
// bulk-delete routes on the student sub-resources.
func (r *Repository[T]) DeleteAllByOwner(ctx context.Context, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Delete(new(T))
	return res.RowsAffected, res.Error
}
