package service

import (
	"context"

	"gorm.io/gorm"

	"homeneeds/internal/errors"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
)

// UndoService moves items into and out of the undo buffer. Delete and Undo
// each run as a single transaction: the item and its tombstone never exist
// both or neither, even across concurrent requests or a crash between steps.
type UndoService interface {
	Delete(ctx context.Context, ownerID, itemID uint) (*model.DeletedItem, error)
	Undo(ctx context.Context, ownerID, deletedID uint) (*model.Item, error)
}

type undoService struct {
	itemRepo repository.ItemRepository
}

// NewUndoService creates a new undo service.
func NewUndoService(itemRepo repository.ItemRepository) UndoService {
	return &undoService{itemRepo: itemRepo}
}

// Delete copies the item's full state into a tombstone and removes the item.
func (s *undoService) Delete(ctx context.Context, ownerID, itemID uint) (*model.DeletedItem, error) {
	var tombstone *model.DeletedItem
	err := s.itemRepo.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, deleted repository.DeletedItemRepository) error {
		item, err := items.FindByOwnerAndIDForUpdate(ctx, ownerID, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrItemNotFound
			}
			return err
		}

		tombstone = &model.DeletedItem{
			OriginalID: item.ID,
			Name:       item.Name,
			Category:   item.Category,
			IsActive:   item.IsActive,
			ToProcure:  item.ToProcure,
			Consumed:   item.Consumed,
			UserID:     item.UserID,
		}
		if err := deleted.Create(ctx, tombstone); err != nil {
			return err
		}
		return items.Delete(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return tombstone, nil
}

// Undo restores a tombstone as a fresh item and consumes the tombstone. The
// restored item gets a new id; the original id is never reused. A second undo
// of the same tombstone fails with not-found.
func (s *undoService) Undo(ctx context.Context, ownerID, deletedID uint) (*model.Item, error) {
	var restored *model.Item
	err := s.itemRepo.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, deleted repository.DeletedItemRepository) error {
		tombstone, err := deleted.FindByOwnerAndIDForUpdate(ctx, ownerID, deletedID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUndoNotFound
			}
			return err
		}

		// The owner may have re-created the item since deleting it.
		if existing, err := items.FindByOwnerNameCategory(ctx, tombstone.UserID, tombstone.Name, tombstone.Category); err == nil && existing != nil {
			return errors.ErrDuplicateItem
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		restored = &model.Item{
			Name:      tombstone.Name,
			Category:  tombstone.Category,
			IsActive:  tombstone.IsActive,
			ToProcure: tombstone.ToProcure,
			Consumed:  tombstone.Consumed,
			UserID:    tombstone.UserID,
		}
		if err := items.Create(ctx, restored); err != nil {
			return err
		}
		return deleted.Delete(ctx, tombstone)
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}
