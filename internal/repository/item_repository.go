package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeneeds/internal/model"
)

// ItemRepository defines persistence operations over checklist items. Every
// lookup is scoped by owner; there is no way to reach another user's rows.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	CreateBatch(ctx context.Context, items []model.Item) error
	Save(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, item *model.Item) error
	FindByOwnerAndIDForUpdate(ctx context.Context, ownerID, id uint) (*model.Item, error)
	FindByOwnerNameCategory(ctx context.Context, ownerID uint, name string, category model.Category) (*model.Item, error)
	ListByCategory(ctx context.Context, ownerID uint, category model.Category) ([]model.Item, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	Count(ctx context.Context, ownerID uint, category model.Category) (int64, error)
	CountToProcure(ctx context.Context, ownerID uint, category model.Category) (int64, error)
	CountConsumed(ctx context.Context, ownerID uint, category model.Category) (int64, error)
	// WithTransaction runs fn against transaction-scoped item and deleted-item
	// repositories; both commit or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, items ItemRepository, deleted DeletedItemRepository) error) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts all items in one statement; used for the default catalog.
func (r *itemRepository) CreateBatch(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the row permanently; callers pair it with a DeletedItem copy
// inside one transaction.
func (r *itemRepository) Delete(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

// FindByOwnerAndIDForUpdate fetches the row with a row-level lock so concurrent
// toggles on the same item serialize instead of losing updates.
func (r *itemRepository) FindByOwnerAndIDForUpdate(ctx context.Context, ownerID, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByOwnerNameCategory(ctx context.Context, ownerID uint, name string, category model.Category) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND category = ?", ownerID, name, category).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListByCategory(ctx context.Context, ownerID uint, category model.Category) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", ownerID, category).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *itemRepository) Count(ctx context.Context, ownerID uint, category model.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ? AND category = ?", ownerID, category).
		Count(&count).Error
	return count, err
}

// CountToProcure counts items still waiting to be bought; consumed items are
// excluded even while flagged.
func (r *itemRepository) CountToProcure(ctx context.Context, ownerID uint, category model.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ? AND category = ? AND to_procure = ? AND consumed = ?", ownerID, category, true, false).
		Count(&count).Error
	return count, err
}

func (r *itemRepository) CountConsumed(ctx context.Context, ownerID uint, category model.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ? AND category = ? AND consumed = ?", ownerID, category, true).
		Count(&count).Error
	return count, err
}

// WithTransaction executes fn within a single database transaction.
func (r *itemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, items ItemRepository, deleted DeletedItemRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &itemRepository{db: tx}, &deletedItemRepository{db: tx})
	})
}
