package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toyblox/internal/app"
	"toyblox/internal/config"
	"toyblox/internal/database"
	"toyblox/internal/models"
	"toyblox/internal/repositories"
	"toyblox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	adminID    string
	adminToken string
}

// setupApp wires the full application on a private in-memory SQLite database
// and seeds one admin account.
func setupApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	cfg := config.Config{JWTSecret: testJWTSecret, TokenTTL: time.Hour, PublicBaseURL: "http://shop.test"}
	application := app.New(app.Options{
		Config:            cfg,
		DB:                db,
		Log:               zerolog.New(io.Discard),
		DisableRequestLog: true,
	})

	userRepo := repositories.NewGORMUserRepository(db)
	hash, err := services.HashPassword("adminpass")
	require.NoError(t, err)
	admin := &models.User{FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin, Verified: true}
	require.NoError(t, userRepo.Create(context.Background(), admin, &models.Customer{}, nil))

	token, err := services.NewAuthService(userRepo, testJWTSecret, time.Hour).GenerateToken(admin)
	require.NoError(t, err)

	return &testEnv{app: application.HTTP, db: db, adminID: admin.ID, adminToken: token}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// registerUser signs up through the API and returns the new user id and token.
func (e *testEnv) registerUser(t *testing.T, email string) (string, string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"f_name":   "Test",
		"l_name":   "User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decode(t, resp, &body)
	return body.User.ID, body.Token
}

func (e *testEnv) seedItem(t *testing.T, description string, price float64, quantity int) string {
	t.Helper()
	item := &models.Item{Description: description, CostPrice: price / 2, SellPrice: price}
	require.NoError(t, repositories.NewGORMItemRepository(e.db).Create(context.Background(), item, quantity, []string{description + ".png"}))
	return item.ID
}

func (e *testEnv) stockOf(t *testing.T, itemID string) int {
	t.Helper()
	var s models.Stock
	require.NoError(t, e.db.First(&s, "item_id = ?", itemID).Error)
	return s.Quantity
}

func (e *testEnv) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupApp(t)

	userID, token := env.registerUser(t, "test@example.com")
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(1), env.countRows(t, &models.Customer{}, "user_id = ?", userID))
	assert.Equal(t, int64(1), env.countRows(t, &models.OutboxEvent{}, "event_type = ? AND aggregate_id = ?", models.EventUserRegistered, userID))

	// Test duplicate registration
	resp := env.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"f_name": "Again", "l_name": "User", "email": "test@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Test missing fields
	resp = env.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var validation map[string]interface{}
	decode(t, resp, &validation)
	assert.Equal(t, "Validation failed", validation["message"])

	// Test login
	resp = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "test@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]interface{}
	decode(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])

	// Test wrong password
	resp = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "test@example.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Test mixed-case email logs in as typed and in any other case
	mixedID, _ := env.registerUser(t, "Mixed.Case@Example.com")
	for _, email := range []string{"Mixed.Case@Example.com", "mixed.case@example.com", "MIXED.CASE@EXAMPLE.COM"} {
		resp = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": email, "password": "password123"})
		assert.Equal(t, http.StatusOK, resp.StatusCode, email)
		var mixedLogin struct {
			User models.User `json:"user"`
		}
		decode(t, resp, &mixedLogin)
		assert.Equal(t, mixedID, mixedLogin.User.ID)
	}
	resp = env.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"f_name": "Again", "l_name": "User", "email": "MIXED.case@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Test email verification
	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", userID).Error)
	require.NotEmpty(t, user.VerificationToken)
	resp = env.do(t, http.MethodGet, "/api/v1/verify?token="+user.VerificationToken, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NoError(t, env.db.First(&user, "id = ?", userID).Error)
	assert.True(t, user.Verified)

	resp = env.do(t, http.MethodGet, "/api/v1/verify?token=unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestItemEndpoints(t *testing.T) {
	env := setupApp(t)
	_, userToken := env.registerUser(t, "shopper@example.com")

	newItem := map[string]interface{}{
		"description": "Castle set",
		"cost_price":  20.0,
		"sell_price":  49.99,
		"quantity":    10,
		"images":      []string{"castle-1.png", "castle-2.png"},
	}

	// Writes need an admin token
	resp := env.do(t, http.MethodPost, "/api/v1/items", "", newItem)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/items", userToken, newItem)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/v1/items", env.adminToken, newItem)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Item models.Item `json:"item"`
	}
	decode(t, resp, &created)
	itemID := created.Item.ID
	require.NotEmpty(t, itemID)

	// Public reads
	resp = env.do(t, http.MethodGet, "/api/v1/items", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.Item
	decode(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Stock.Quantity)
	assert.Len(t, items[0].Images, 2)

	// Update item
	resp = env.do(t, http.MethodPut, "/api/v1/items/"+itemID, env.adminToken, map[string]interface{}{
		"description": "Castle set XL", "cost_price": 25.0, "sell_price": 59.99,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Item models.Item `json:"item"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, "Castle set XL", updated.Item.Description)
	assert.Len(t, updated.Item.Images, 2)

	// Stock
	resp = env.do(t, http.MethodPut, "/api/v1/stocks/"+itemID, env.adminToken, map[string]int{"quantity": 3})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodGet, "/api/v1/stocks/"+itemID, "", nil)
	var stock models.Stock
	decode(t, resp, &stock)
	assert.Equal(t, 3, stock.Quantity)

	// Soft delete
	resp = env.do(t, http.MethodDelete, "/api/v1/items/"+itemID, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp map[string]string
	decode(t, resp, &deleteResp)
	assert.Contains(t, deleteResp["message"], "deleted successfully")

	resp = env.do(t, http.MethodGet, "/api/v1/items/"+itemID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodGet, "/api/v1/stocks", "", nil)
	var stocks []models.StockView
	decode(t, resp, &stocks)
	assert.Empty(t, stocks)

	var n int64
	require.NoError(t, env.db.Unscoped().Model(&models.Item{}).Where("id = ? AND deleted_at IS NOT NULL", itemID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "deleted item row is kept")
}

func TestPlaceOrder(t *testing.T) {
	env := setupApp(t)
	_, userToken := env.registerUser(t, "buyer@example.com")
	castle := env.seedItem(t, "Castle set", 49.99, 5)
	robot := env.seedItem(t, "Robot arm", 15, 2)

	// Unknown customer
	resp := env.do(t, http.MethodPost, "/api/v1/orders", env.adminToken, map[string]interface{}{
		"user_id": "no-such-user",
		"items":   []map[string]interface{}{{"item_id": castle, "quantity": 1, "price": 49.99}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	assert.Zero(t, env.countRows(t, &models.Order{}, ""))

	// Validation
	resp = env.do(t, http.MethodPost, "/api/v1/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{{"item_id": castle, "quantity": 0, "price": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/orders", userToken, map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Successful placement keeps the submitted prices
	resp = env.do(t, http.MethodPost, "/api/v1/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": castle, "quantity": 2, "price": 45.5},
			{"item_id": robot, "quantity": 1, "price": 12},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed map[string]string
	decode(t, resp, &placed)
	orderID := placed["order_id"]
	require.NotEmpty(t, orderID)

	var lines []models.OrderLine
	require.NoError(t, env.db.Where("order_id = ?", orderID).Order("price_at_order DESC").Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.Equal(t, 45.5, lines[0].PriceAtOrder)
	assert.Equal(t, 12.0, lines[1].PriceAtOrder)

	var order models.Order
	require.NoError(t, env.db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Nil(t, order.DateShipped)
	assert.Equal(t, 3, env.stockOf(t, castle))
	assert.Equal(t, 1, env.stockOf(t, robot))
	assert.Equal(t, int64(1), env.countRows(t, &models.OutboxEvent{}, "event_type = ? AND aggregate_id = ?", models.EventOrderPlaced, orderID))

	// Insufficient stock rolls back the whole order
	resp = env.do(t, http.MethodPost, "/api/v1/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": castle, "quantity": 1, "price": 45.5},
			{"item_id": robot, "quantity": 5, "price": 12},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int64(1), env.countRows(t, &models.Order{}, ""))
	assert.Equal(t, 3, env.stockOf(t, castle))

	// Unknown item
	resp = env.do(t, http.MethodPost, "/api/v1/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{{"item_id": "missing", "quantity": 1, "price": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func placeOrder(t *testing.T, env *testEnv, token, itemID string) string {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{{"item_id": itemID, "quantity": 1, "price": 10}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed map[string]string
	decode(t, resp, &placed)
	return placed["order_id"]
}

func TestOrderStatusLifecycle(t *testing.T) {
	env := setupApp(t)
	_, userToken := env.registerUser(t, "buyer@example.com")
	itemID := env.seedItem(t, "Castle set", 10, 10)
	orderID := placeOrder(t, env, userToken, itemID)
	path := "/api/v1/orders/" + orderID + "/status"

	load := func() models.Order {
		var o models.Order
		require.NoError(t, env.db.First(&o, "id = ?", orderID).Error)
		return o
	}
	events := func() int64 {
		return env.countRows(t, &models.OutboxEvent{}, "aggregate_id = ?", orderID)
	}

	// Only admins change status
	resp := env.do(t, http.MethodPut, path, userToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Unknown status
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, models.StatusPending, load().Status)

	// Skipping a step
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// pending -> shipped
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var statusResp map[string]string
	decode(t, resp, &statusResp)
	assert.Equal(t, "Order status updated successfully", statusResp["message"])
	assert.Equal(t, "shipped", statusResp["status"])
	o := load()
	assert.Equal(t, models.StatusShipped, o.Status)
	require.NotNil(t, o.DateShipped)
	assert.Nil(t, o.DateDelivered)
	assert.Equal(t, int64(2), events())

	// Same status again is a no-op
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int64(2), events())

	// Backward
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// shipped -> delivered
	resp = env.do(t, http.MethodPut, path, env.adminToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	o = load()
	assert.Equal(t, models.StatusDelivered, o.Status)
	require.NotNil(t, o.DateDelivered)
	assert.Equal(t, int64(3), events())

	// Missing order
	resp = env.do(t, http.MethodPut, "/api/v1/orders/missing/status", env.adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderVisibility(t *testing.T) {
	env := setupApp(t)
	_, aliceToken := env.registerUser(t, "alice@example.com")
	_, bobToken := env.registerUser(t, "bob@example.com")
	itemID := env.seedItem(t, "Castle set", 10, 10)
	aliceOrder := placeOrder(t, env, aliceToken, itemID)
	placeOrder(t, env, bobToken, itemID)

	resp := env.do(t, http.MethodGet, "/api/v1/orders/"+aliceOrder, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var details models.OrderDetails
	decode(t, resp, &details)
	assert.Equal(t, aliceOrder, details.Order.ID)
	require.Len(t, details.Lines, 1)
	assert.Equal(t, "Castle set", details.Lines[0].Description)
	assert.Equal(t, 10.0, details.TotalAmount)

	resp = env.do(t, http.MethodGet, "/api/v1/orders/"+aliceOrder, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/v1/orders", bobToken, nil)
	var own []models.OrderSummary
	decode(t, resp, &own)
	assert.Len(t, own, 1)

	resp = env.do(t, http.MethodGet, "/api/v1/orders", env.adminToken, nil)
	var all []models.OrderSummary
	decode(t, resp, &all)
	assert.Len(t, all, 2)

	resp = env.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUserAdministration(t *testing.T) {
	env := setupApp(t)
	userID, userToken := env.registerUser(t, "member@example.com")
	otherID, _ := env.registerUser(t, "other@example.com")

	// Users read themselves but not others
	resp := env.do(t, http.MethodGet, "/api/v1/users/"+userID, userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodGet, "/api/v1/users/"+otherID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Profile update and customers/me
	resp = env.do(t, http.MethodPut, "/api/v1/users/"+userID+"/profile", userToken, map[string]string{
		"address": "1 Brick Lane", "country": "PH", "phone_number": "555-0100",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodGet, "/api/v1/customers/me", userToken, nil)
	var me models.Profile
	decode(t, resp, &me)
	assert.Equal(t, "1 Brick Lane", me.Address)
	assert.Equal(t, "member@example.com", me.Email)

	// Role change
	resp = env.do(t, http.MethodPut, "/api/v1/users/"+otherID+"/role", env.adminToken, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPut, "/api/v1/users/"+otherID+"/role", env.adminToken, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Soft delete blocks login, reactivation restores it
	resp = env.do(t, http.MethodDelete, "/api/v1/users/"+userID, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "member@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/v1/users/"+userID+"/reactivate", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "member@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Admins cannot delete themselves
	resp = env.do(t, http.MethodDelete, "/api/v1/users/"+env.adminID, env.adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminAnalytics(t *testing.T) {
	env := setupApp(t)
	_, userToken := env.registerUser(t, "buyer@example.com")
	itemID := env.seedItem(t, "Castle set", 10, 10)
	placeOrder(t, env, userToken, itemID)
	placeOrder(t, env, userToken, itemID)

	resp := env.do(t, http.MethodGet, "/api/v1/admin/analytics/orders?days=7", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byStatus struct {
		Days     int              `json:"days"`
		ByStatus map[string]int64 `json:"byStatus"`
	}
	decode(t, resp, &byStatus)
	assert.Equal(t, 7, byStatus.Days)
	assert.Equal(t, map[string]int64{"pending": 2, "shipped": 0, "delivered": 0}, byStatus.ByStatus)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/analytics/orders?days=0", env.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/v1/admin/stats", env.adminToken, nil)
	var stats models.AdminStats
	decode(t, resp, &stats)
	assert.Equal(t, models.AdminStats{TotalOrders: 2, TotalProducts: 1, TotalAdmins: 1, TotalCustomers: 1}, stats)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/analytics/products", env.adminToken, nil)
	var products struct {
		TopProducts []models.ProductSales `json:"topProducts"`
	}
	decode(t, resp, &products)
	require.Len(t, products.TopProducts, 1)
	assert.Equal(t, int64(2), products.TopProducts[0].Quantity)

	resp = env.do(t, http.MethodGet, "/api/v1/orders/stats", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orderStats models.OrderStats
	decode(t, resp, &orderStats)
	assert.Equal(t, int64(2), orderStats.TotalOrders)
	assert.Len(t, orderStats.OrdersByStatus, 3)
	assert.Len(t, orderStats.RecentOrders, 2)
	assert.Len(t, orderStats.MonthlyOrders, 6)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
