package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"photostudio-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)
	session := createService(t, db, models.ServiceCategorySession)

	// Delivery without an address is rejected
	w := performRequest(r, "POST", "/api/orders", bearerToken(t, customer), map[string]interface{}{
		"serviceId":      product.ID,
		"deliveryMethod": "delivery",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Session services cannot be ordered
	w = performRequest(r, "POST", "/api/orders", bearerToken(t, customer), map[string]interface{}{
		"serviceId":      session.ID,
		"deliveryMethod": "pickup",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, "POST", "/api/orders", bearerToken(t, customer), map[string]interface{}{
		"serviceId":       product.ID,
		"deliveryMethod":  "delivery",
		"deliveryAddress": "12 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", customer.ID).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.OrderUnpaid, order.PaymentStatus)
}

func TestCancelOrderOnlyFromPending(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)

	editing := createOrder(t, db, customer, product, models.OrderEditing)
	w := performRequest(r, "DELETE", "/api/orders/my/"+editing.ID.String(),
		bearerToken(t, customer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Can only cancel pending orders", decodeBody(t, w)["error"])

	pending := createOrder(t, db, customer, product, models.OrderPending)
	w = performRequest(r, "DELETE", "/api/orders/my/"+pending.ID.String(),
		bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", pending.ID).Error)
	assert.Equal(t, models.OrderCanceled, got.Status)
}

func TestArchiveOrderPreconditions(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)

	printed := createOrder(t, db, customer, product, models.OrderPrinted)
	w := performRequest(r, "DELETE", "/api/orders/my/"+printed.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pickedUp := createOrder(t, db, customer, product, models.OrderPickedUp)
	w = performRequest(r, "DELETE", "/api/orders/my/"+pickedUp.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", pickedUp.ID).Error)
	assert.True(t, got.DeletedByUser)
	assert.NotNil(t, got.UserDeletedAt)
}

func TestArchiveOrderTwiceReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)

	order := createOrder(t, db, customer, product, models.OrderDelivered)
	w := performRequest(r, "DELETE", "/api/orders/my/"+order.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "DELETE", "/api/orders/my/"+order.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found or already deleted", decodeBody(t, w)["error"])
}

func TestGetMyOrdersExcludesArchived(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)

	createOrder(t, db, customer, product, models.OrderPending)
	archived := createOrder(t, db, customer, product, models.OrderDelivered)
	w := performRequest(r, "DELETE", "/api/orders/my/"+archived.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/api/orders/my", bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	w = performRequest(r, "GET", "/api/orders", bearerToken(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestHardDeleteOrderCascades(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)

	order := createOrder(t, db, customer, product, models.OrderDelivered)
	for i := 0; i < 2; i++ {
		photo := models.Photo{OriginalURL: "https://cdn.example.com/raw.jpg", OrderID: order.ID}
		require.NoError(t, db.Create(&photo).Error)
	}
	payment := models.Payment{
		Amount:    150,
		Method:    models.PaymentMethodCash,
		Status:    models.PaymentPending,
		Reference: "PAY-TEST-000001",
		OrderID:   order.ID,
	}
	require.NoError(t, db.Create(&payment).Error)

	w := performRequest(r, "DELETE", "/api/orders/"+order.ID.String(), bearerToken(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var photoCount, paymentCount, orderCount int64
	db.Model(&models.Photo{}).Where("order_id = ?", order.ID).Count(&photoCount)
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&paymentCount)
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orderCount)
	assert.Equal(t, int64(0), photoCount)
	assert.Equal(t, int64(0), paymentCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestHardDeleteOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	admin := createUser(t, db, models.RoleAdmin)

	w := performRequest(r, "DELETE", "/api/orders/"+uuid.NewString(), bearerToken(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBatchDeleteOrdersPartialSuccess(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)

	order := createOrder(t, db, customer, product, models.OrderEditing)
	photo := models.Photo{OriginalURL: "https://cdn.example.com/raw.jpg", OrderID: order.ID}
	require.NoError(t, db.Create(&photo).Error)

	w := performRequest(r, "POST", "/api/orders/batch-delete", bearerToken(t, admin),
		map[string]interface{}{"orderIds": []uuid.UUID{order.ID, uuid.New()}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["deletedCount"])

	var photoCount int64
	db.Model(&models.Photo{}).Where("order_id = ?", order.ID).Count(&photoCount)
	assert.Equal(t, int64(0), photoCount)
}

func TestCustomerBatchDeleteOrdersRejectsNonTerminal(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)

	delivered := createOrder(t, db, customer, product, models.OrderDelivered)
	canceled := createOrder(t, db, customer, product, models.OrderCanceled)
	editing := createOrder(t, db, customer, product, models.OrderEditing)

	w := performRequest(r, "POST", "/api/orders/my/batch-delete", bearerToken(t, customer),
		map[string]interface{}{"orderIds": []uuid.UUID{delivered.ID, canceled.ID, editing.ID}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	invalid, ok := body["invalidOrders"].([]interface{})
	require.True(t, ok)
	require.Len(t, invalid, 1)
	entry := invalid[0].(map[string]interface{})
	assert.Equal(t, editing.ID.String(), entry["id"])
	assert.Equal(t, "editing", entry["status"])

	var count int64
	db.Model(&models.Order{}).Where("deleted_by_user = ?", true).Count(&count)
	assert.Equal(t, int64(0), count, "batch must be all-or-nothing")
}

func TestOrderTransitionAndForceUpdate(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)

	order := createOrder(t, db, customer, product, models.OrderPending)

	// Constrained path must walk the chain
	w := performRequest(r, "PATCH", "/api/orders/"+order.ID.String()+"/status",
		bearerToken(t, admin), map[string]string{"status": "printed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, status := range []string{"editing", "ready", "printed", "delivered"} {
		w = performRequest(r, "PATCH", "/api/orders/"+order.ID.String()+"/status",
			bearerToken(t, admin), map[string]string{"status": status})
		require.Equal(t, http.StatusOK, w.Code, "transition to %s", status)
	}

	// The force update can rewind and flip the payment flag
	w = performRequest(r, "PUT", "/api/orders/"+order.ID.String(),
		bearerToken(t, admin), map[string]string{"status": "editing", "paymentStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderEditing, got.Status)
	assert.Equal(t, models.OrderPaid, got.PaymentStatus)
}

func TestRestoreOrderResetsArchiveFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)

	order := createOrder(t, db, customer, product, models.OrderCanceled)
	w := performRequest(r, "DELETE", "/api/orders/my/"+order.ID.String()+"/delete",
		bearerToken(t, customer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "PATCH", "/api/orders/"+order.ID.String()+"/restore",
		bearerToken(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.False(t, got.DeletedByUser)
	assert.Nil(t, got.UserDeletedAt)
	assert.Equal(t, models.OrderCanceled, got.Status)
}
