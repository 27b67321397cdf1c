package services_test

import (
	"context"
	"fmt"
	"testing"

	"toyblox/internal/models"
	"toyblox/internal/repositories"
	"toyblox/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemService_GetAllItems(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)

	expectedItems := []models.Item{
		{ID: "1", Description: "Castle set", SellPrice: 10.0},
		{ID: "2", Description: "Robot arm", SellPrice: 20.0},
	}
	mockRepo.On("List", mock.Anything).Return(expectedItems, nil).Once()

	items, err := service.GetAllItems(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expectedItems, items)
	mockRepo.AssertExpectations(t)
}

func TestItemService_GetItemByID(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)
	ctx := context.Background()

	expectedItem := &models.Item{ID: "1", Description: "Castle set"}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, "1").Return(expectedItem, nil).Once()
	item, err := service.GetItemByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedItem, item)

	// Test item not found
	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("item with ID 99: %w", repositories.ErrNotFound)).Once()
	item, err = service.GetItemByID(ctx, "99")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Nil(t, item)
	mockRepo.AssertExpectations(t)
}

func TestItemService_CreateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)
	qty := 12

	mockRepo.On("Create", mock.Anything,
		mock.MatchedBy(func(i *models.Item) bool { return i.Description == "Castle set" && i.SellPrice == 25 }),
		12, []string{"castle.png"},
	).Return(nil).Once()

	item, err := service.CreateItem(context.Background(), services.ItemInput{
		Description: "Castle set", CostPrice: 10, SellPrice: 25, Quantity: &qty, Images: []string{"castle.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Castle set", item.Description)

	// Missing quantity starts at zero
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Item"), 0, []string(nil)).Return(nil).Once()
	_, err = service.CreateItem(context.Background(), services.ItemInput{Description: "Robot arm"})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestItemService_UpdateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(i *models.Item) bool { return i.ID == "1" }), (*int)(nil), []string(nil)).Return(nil).Once()
	mockRepo.On("GetByID", mock.Anything, "1").Return(&models.Item{ID: "1", Description: "New"}, nil).Once()
	item, err := service.UpdateItem(ctx, "1", services.ItemInput{Description: "New"})
	assert.NoError(t, err)
	assert.Equal(t, "New", item.Description)

	// Test update of a missing item
	mockRepo.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("item with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.UpdateItem(ctx, "99", services.ItemInput{Description: "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestItemService_DeleteItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "1").Return(nil).Once()
	assert.NoError(t, service.DeleteItem(context.Background(), "1"))
	mockRepo.AssertExpectations(t)
}

func TestItemService_SetStock(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)
	ctx := context.Background()

	_, err := service.SetStock(ctx, "1", -1)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	mockRepo.On("SetStock", mock.Anything, "1", 7).Return(nil).Once()
	mockRepo.On("GetStock", mock.Anything, "1").Return(&models.Stock{ItemID: "1", Quantity: 7}, nil).Once()
	stock, err := service.SetStock(ctx, "1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, stock.Quantity)
	mockRepo.AssertExpectations(t)
}
