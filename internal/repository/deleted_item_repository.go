package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeneeds/internal/model"
)

// DeletedItemRepository defines persistence operations over the undo buffer.
// It is only ever reached through ItemRepository.WithTransaction; the undo
// buffer has no standalone access path.
type DeletedItemRepository interface {
	Create(ctx context.Context, deleted *model.DeletedItem) error
	FindByOwnerAndIDForUpdate(ctx context.Context, ownerID, id uint) (*model.DeletedItem, error)
	Delete(ctx context.Context, deleted *model.DeletedItem) error
}

type deletedItemRepository struct {
	db *gorm.DB
}

func (r *deletedItemRepository) Create(ctx context.Context, deleted *model.DeletedItem) error {
	return r.db.WithContext(ctx).Create(deleted).Error
}

// FindByOwnerAndIDForUpdate locks the tombstone row so two concurrent undos of
// the same id cannot both restore it.
func (r *deletedItemRepository) FindByOwnerAndIDForUpdate(ctx context.Context, ownerID, id uint) (*model.DeletedItem, error) {
	var deleted model.DeletedItem
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&deleted).Error; err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *deletedItemRepository) Delete(ctx context.Context, deleted *model.DeletedItem) error {
	return r.db.WithContext(ctx).Delete(deleted).Error
}
