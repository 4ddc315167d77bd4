package service

import (
	"context"
	"fmt"

	"homeneeds/internal/model"
	"homeneeds/internal/repository"
)

// DashboardStats is the read-side aggregation shown on the dashboard. The
// procure counts exclude items already consumed.
type DashboardStats struct {
	VegProcureCount     int64 `json:"veg_procure_count"`
	GroceryProcureCount int64 `json:"grocery_procure_count"`
	TotalVeg            int64 `json:"total_veg"`
	TotalGrocery        int64 `json:"total_grocery"`
	ConsumedVeg         int64 `json:"consumed_veg"`
	ConsumedGrocery     int64 `json:"consumed_grocery"`
}

// StatsService derives dashboard counts from the item ledger. Nothing is
// cached; every call reflects the ledger at that moment.
type StatsService interface {
	Dashboard(ctx context.Context, ownerID uint) (*DashboardStats, error)
}

type statsService struct {
	itemRepo repository.ItemRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(itemRepo repository.ItemRepository) StatsService {
	return &statsService{itemRepo: itemRepo}
}

func (s *statsService) Dashboard(ctx context.Context, ownerID uint) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dst      *int64
		count    func(ctx context.Context, ownerID uint, category model.Category) (int64, error)
		category model.Category
	}{
		{&stats.VegProcureCount, s.itemRepo.CountToProcure, model.CategoryVegFruit},
		{&stats.GroceryProcureCount, s.itemRepo.CountToProcure, model.CategoryGrocery},
		{&stats.TotalVeg, s.itemRepo.Count, model.CategoryVegFruit},
		{&stats.TotalGrocery, s.itemRepo.Count, model.CategoryGrocery},
		{&stats.ConsumedVeg, s.itemRepo.CountConsumed, model.CategoryVegFruit},
		{&stats.ConsumedGrocery, s.itemRepo.CountConsumed, model.CategoryGrocery},
	}
	for _, c := range counts {
		n, err := c.count(ctx, ownerID, c.category)
		if err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		*c.dst = n
	}
	return stats, nil
}
