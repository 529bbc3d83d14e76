// Package accounts persists UserAccount rows for the profile service.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pastevault/backend/internal/models"
	"github.com/pastevault/backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements services.AccountStore on a gorm/postgres connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, id uuid.UUID) (*models.UserAccount, error) {
	var account models.UserAccount
	err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrStorageFailure, err)
	}
	return &account, nil
}

func (s *GormStore) Save(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&models.UserAccount{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", services.ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

// UpdateLocked runs fn against the row held under SELECT ... FOR UPDATE, then
// writes whatever fields fn returns in the same transaction. Returning an
// error from fn rolls back with no write; returning an empty map commits
// without touching the row.
func (s *GormStore) UpdateLocked(ctx context.Context, id uuid.UUID, fn func(*models.UserAccount) (map[string]interface{}, error)) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.UserAccount
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", services.ErrStorageFailure, err)
		}

		fields, err := fn(&account)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&account).Updates(fields).Error; err != nil {
			return fmt.Errorf("%w: %v", services.ErrStorageFailure, err)
		}
		return nil
	})
	return err
}
