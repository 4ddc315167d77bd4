package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"homeneeds/internal/errors"
	"homeneeds/internal/model"
)

// MockDeletedItemRepository is a mock implementation of DeletedItemRepository.
type MockDeletedItemRepository struct {
	mock.Mock
}

func (m *MockDeletedItemRepository) Create(ctx context.Context, item *model.DeletedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockDeletedItemRepository) FindByOwnerAndIDForUpdate(ctx context.Context, ownerID, id uint) (*model.DeletedItem, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletedItem), args.Error(1)
}

func (m *MockDeletedItemRepository) Delete(ctx context.Context, item *model.DeletedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func TestUndoService_Delete(t *testing.T) {
	t.Run("copies full state into the tombstone", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockDeleted := new(MockDeletedItemRepository)
		mockItems.deleted = mockDeleted

		item := &model.Item{
			ID:        10,
			Name:      "Tomato",
			Category:  model.CategoryVegFruit,
			IsActive:  true,
			ToProcure: true,
			Consumed:  true,
			UserID:    1,
		}
		mockItems.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(1), uint(10)).Return(item, nil)
		mockDeleted.On("Create", mock.Anything, mock.MatchedBy(func(d *model.DeletedItem) bool {
			return d.OriginalID == 10 && d.Name == "Tomato" && d.Category == model.CategoryVegFruit &&
				d.IsActive && d.ToProcure && d.Consumed && d.UserID == 1
		})).Return(nil)
		mockItems.On("Delete", mock.Anything, item).Return(nil)

		service := NewUndoService(mockItems)
		tombstone, err := service.Delete(context.Background(), 1, 10)

		assert.NoError(t, err)
		assert.NotNil(t, tombstone)
		assert.Equal(t, uint(10), tombstone.OriginalID)
		mockItems.AssertExpectations(t)
		mockDeleted.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockItems.deleted = new(MockDeletedItemRepository)
		mockItems.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUndoService(mockItems)
		tombstone, err := service.Delete(context.Background(), 1, 99)

		assert.Equal(t, errors.ErrItemNotFound, err)
		assert.Nil(t, tombstone)
	})

	t.Run("another owner's item behaves like a missing one", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockItems.deleted = new(MockDeletedItemRepository)
		mockItems.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUndoService(mockItems)
		tombstone, err := service.Delete(context.Background(), 2, 10)

		assert.Equal(t, errors.ErrItemNotFound, err)
		assert.Nil(t, tombstone)
	})
}

func TestUndoService_Undo(t *testing.T) {
	tombstone := func() *model.DeletedItem {
		return &model.DeletedItem{
			ID:         7,
			OriginalID: 10,
			Name:       "Tomato",
			Category:   model.CategoryVegFruit,
			IsActive:   true,
			ToProcure:  true,
			Consumed:   false,
			UserID:     1,
		}
	}

	t.Run("restores state under a fresh id", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockDeleted := new(MockDeletedItemRepository)
		mockItems.deleted = mockDeleted

		ts := tombstone()
		mockDeleted.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(1), uint(7)).Return(ts, nil)
		mockItems.On("FindByOwnerNameCategory", mock.Anything, uint(1), "Tomato", model.CategoryVegFruit).Return(nil, gorm.ErrRecordNotFound)
		mockItems.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
			return i.ID == 0 && i.Name == "Tomato" && i.Category == model.CategoryVegFruit &&
				i.IsActive && i.ToProcure && !i.Consumed && i.UserID == 1
		})).Return(nil)
		mockDeleted.On("Delete", mock.Anything, ts).Return(nil)

		service := NewUndoService(mockItems)
		restored, err := service.Undo(context.Background(), 1, 7)

		assert.NoError(t, err)
		assert.NotNil(t, restored)
		assert.Equal(t, "Tomato", restored.Name)
		assert.True(t, restored.ToProcure)
		mockItems.AssertExpectations(t)
		mockDeleted.AssertExpectations(t)
	})

	t.Run("missing tombstone", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockDeleted := new(MockDeletedItemRepository)
		mockItems.deleted = mockDeleted
		mockDeleted.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUndoService(mockItems)
		restored, err := service.Undo(context.Background(), 1, 99)

		assert.Equal(t, errors.ErrUndoNotFound, err)
		assert.Nil(t, restored)
	})

	t.Run("owner re-created the item since deleting", func(t *testing.T) {
		mockItems := new(MockItemRepository)
		mockDeleted := new(MockDeletedItemRepository)
		mockItems.deleted = mockDeleted

		ts := tombstone()
		mockDeleted.On("FindByOwnerAndIDForUpdate", mock.Anything, uint(1), uint(7)).Return(ts, nil)
		mockItems.On("FindByOwnerNameCategory", mock.Anything, uint(1), "Tomato", model.CategoryVegFruit).Return(&model.Item{ID: 42, Name: "Tomato"}, nil)

		service := NewUndoService(mockItems)
		restored, err := service.Undo(context.Background(), 1, 7)

		assert.Equal(t, errors.ErrDuplicateItem, err)
		assert.Nil(t, restored)
		mockItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockDeleted.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
