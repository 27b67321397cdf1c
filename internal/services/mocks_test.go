package services_test

import (
	"context"
	"time"

	"toyblox/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User, customer *models.Customer, event *models.OutboxEvent) error {
	args := m.Called(ctx, user, customer, event)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return m.userResult(m.Called(ctx, token))
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User, customer *models.Customer) error {
	return m.Called(ctx, user, customer).Error(0)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Reactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserRepository) GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine, event *models.OutboxEvent) error {
	return m.Called(ctx, order, lines, event).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDetails(ctx context.Context, id string) (*models.OrderDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetails), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, customerID string) ([]models.OrderSummary, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time, event *models.OutboxEvent) error {
	return m.Called(ctx, id, from, to, at, event).Error(0)
}

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item, quantity int, images []string) error {
	return m.Called(ctx, item, quantity, images).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item, quantity *int, images []string) error {
	return m.Called(ctx, item, quantity, images).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemRepository) ListStock(ctx context.Context) ([]models.StockView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StockView), args.Error(1)
}

func (m *MockItemRepository) GetStock(ctx context.Context, itemID string) (*models.Stock, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockItemRepository) SetStock(ctx context.Context, itemID string, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

// MockAnalyticsRepository is a mock implementation of repositories.AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) OrdersByStatus(ctx context.Context, since *time.Time) ([]models.StatusCount, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *MockAnalyticsRepository) RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *MockAnalyticsRepository) OrdersPlacedSince(ctx context.Context, since time.Time) ([]models.OrderSummary, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *MockAnalyticsRepository) CountItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) UsersByRole(ctx context.Context) (models.UserRoleCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.UserRoleCounts), args.Error(1)
}

func (m *MockAnalyticsRepository) NewestItems(ctx context.Context, limit int) ([]models.TopProduct, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.TopProduct), args.Error(1)
}

func (m *MockAnalyticsRepository) TopSellingItems(ctx context.Context, since time.Time, limit int) ([]models.ProductSales, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]models.ProductSales), args.Error(1)
}
