package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"homeneeds/internal/errors"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
)

const maxItemNameLength = 100

// defaultVegFruit and defaultGrocery are the starter catalog seeded once per
// verified user.
var defaultVegFruit = []string{
	"Tomato", "Potato", "Onion", "Carrot", "Spinach", "Broccoli",
	"Capsicum", "Cucumber", "Cabbage", "Cauliflower", "Green Beans",
	"Peas", "Corn", "Lettuce", "Mushroom", "Garlic", "Ginger",
	"Apple", "Banana", "Orange", "Mango", "Grapes", "Watermelon",
	"Strawberry", "Pineapple", "Papaya", "Lemon", "Pomegranate",
	"Guava", "Kiwi",
}

var defaultGrocery = []string{
	"Rice", "Wheat Flour", "Sugar", "Salt", "Cooking Oil", "Butter",
	"Milk", "Bread", "Eggs", "Tea", "Coffee", "Pasta", "Noodles",
	"Oats", "Cornflakes", "Biscuits", "Jam", "Honey", "Ketchup",
	"Soy Sauce", "Vinegar", "Pepper", "Turmeric", "Cumin",
	"Coriander Powder", "Chili Powder", "Cinnamon", "Cardamom",
	"Dal / Lentils", "Chickpeas",
}

// ItemService handles checklist item operations. All operations are scoped by
// owner; an item belonging to another user behaves exactly like a missing one.
type ItemService interface {
	List(ctx context.Context, ownerID uint, category model.Category) ([]model.Item, error)
	Create(ctx context.Context, ownerID uint, name string, category model.Category) (*model.Item, error)
	ToggleProcure(ctx context.Context, ownerID, itemID uint) (*model.Item, error)
	ToggleConsumed(ctx context.Context, ownerID, itemID uint) (*model.Item, error)
	SeedDefaults(ctx context.Context, ownerID uint) error
}

type itemService struct {
	itemRepo repository.ItemRepository
}

// Ensure the item service can seed catalogs for the verification flow.
var _ CatalogSeeder = (ItemService)(nil)

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

// List returns the owner's items in a category, sorted by name ascending.
func (s *itemService) List(ctx context.Context, ownerID uint, category model.Category) ([]model.Item, error) {
	if !model.IsValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}
	items, err := s.itemRepo.ListByCategory(ctx, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create adds a new item after name, category and uniqueness checks.
func (s *itemService) Create(ctx context.Context, ownerID uint, name string, category model.Category) (*model.Item, error) {
	// The length limit counts characters, matching the varchar(100) column.
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxItemNameLength {
		return nil, errors.ErrInvalidItemName
	}
	if !model.IsValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}

	if existing, err := s.itemRepo.FindByOwnerNameCategory(ctx, ownerID, name, category); err == nil && existing != nil {
		return nil, errors.ErrDuplicateItem
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate item: %w", err)
	}

	item := &model.Item{
		Name:     name,
		Category: category,
		IsActive: true,
		UserID:   ownerID,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// ToggleProcure flips the to-procure flag under a row lock. Clearing the flag
// also clears consumed: an item cannot stay consumed while no longer flagged
// for procurement.
func (s *itemService) ToggleProcure(ctx context.Context, ownerID, itemID uint) (*model.Item, error) {
	var toggled *model.Item
	err := s.itemRepo.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, _ repository.DeletedItemRepository) error {
		item, err := items.FindByOwnerAndIDForUpdate(ctx, ownerID, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrItemNotFound
			}
			return err
		}

		item.ToProcure = !item.ToProcure
		if !item.ToProcure {
			item.Consumed = false
		}
		if err := items.Save(ctx, item); err != nil {
			return err
		}
		toggled = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// ToggleConsumed flips the consumed flag under a row lock. No coupling applies
// in this direction.
func (s *itemService) ToggleConsumed(ctx context.Context, ownerID, itemID uint) (*model.Item, error) {
	var toggled *model.Item
	err := s.itemRepo.WithTransaction(ctx, func(ctx context.Context, items repository.ItemRepository, _ repository.DeletedItemRepository) error {
		item, err := items.FindByOwnerAndIDForUpdate(ctx, ownerID, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrItemNotFound
			}
			return err
		}

		item.Consumed = !item.Consumed
		if err := items.Save(ctx, item); err != nil {
			return err
		}
		toggled = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// SeedDefaults inserts the starter catalog in one batch. It is a no-op for any
// user who already owns items, which makes repeated calls safe.
func (s *itemService) SeedDefaults(ctx context.Context, ownerID uint) error {
	count, err := s.itemRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if count > 0 {
		return nil
	}

	items := make([]model.Item, 0, len(defaultVegFruit)+len(defaultGrocery))
	for _, name := range defaultVegFruit {
		items = append(items, model.Item{Name: name, Category: model.CategoryVegFruit, IsActive: true, UserID: ownerID})
	}
	for _, name := range defaultGrocery {
		items = append(items, model.Item{Name: name, Category: model.CategoryGrocery, IsActive: true, UserID: ownerID})
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return fmt.Errorf("seed default catalog: %w", err)
	}
	return nil
}
