package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"homeneeds/internal/model"
)

func TestStatsService_Dashboard(t *testing.T) {
	t.Run("aggregates all six counts", func(t *testing.T) {
		mockRepo := new(MockItemRepository)
		mockRepo.On("CountToProcure", mock.Anything, uint(1), model.CategoryVegFruit).Return(int64(3), nil)
		mockRepo.On("CountToProcure", mock.Anything, uint(1), model.CategoryGrocery).Return(int64(5), nil)
		mockRepo.On("Count", mock.Anything, uint(1), model.CategoryVegFruit).Return(int64(30), nil)
		mockRepo.On("Count", mock.Anything, uint(1), model.CategoryGrocery).Return(int64(31), nil)
		mockRepo.On("CountConsumed", mock.Anything, uint(1), model.CategoryVegFruit).Return(int64(2), nil)
		mockRepo.On("CountConsumed", mock.Anything, uint(1), model.CategoryGrocery).Return(int64(1), nil)

		service := NewStatsService(mockRepo)
		stats, err := service.Dashboard(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, &DashboardStats{
			VegProcureCount:     3,
			GroceryProcureCount: 5,
			TotalVeg:            30,
			TotalGrocery:        31,
			ConsumedVeg:         2,
			ConsumedGrocery:     1,
		}, stats)
		mockRepo.AssertExpectations(t)
	})

	t.Run("propagates a count failure", func(t *testing.T) {
		mockRepo := new(MockItemRepository)
		mockRepo.On("CountToProcure", mock.Anything, uint(1), model.CategoryVegFruit).Return(int64(0), assert.AnError)

		service := NewStatsService(mockRepo)
		stats, err := service.Dashboard(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}
