package controllers

import (
	"net/http"
	"strings"
	"testing"

	"photostudio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentOwnershipAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	owner := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)
	order := createOrder(t, db, owner, product, models.OrderPending)

	body := map[string]interface{}{
		"amount":  150.0,
		"method":  "gcash",
		"orderId": order.ID,
	}

	w := performRequest(r, "POST", "/api/payments", bearerToken(t, stranger), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not allowed to pay for this order", decodeBody(t, w)["error"])

	w = performRequest(r, "POST", "/api/payments", bearerToken(t, owner), body)
	require.Equal(t, http.StatusCreated, w.Code)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.True(t, strings.HasPrefix(payment.Reference, "PAY-"))

	// Second payment for the same order is rejected
	w = performRequest(r, "POST", "/api/payments", bearerToken(t, owner), body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetMyPaymentByOrder(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	owner := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	product := createService(t, db, models.ServiceCategoryProduct)
	order := createOrder(t, db, owner, product, models.OrderPending)

	w := performRequest(r, "GET", "/api/payments/order/"+order.ID.String(),
		bearerToken(t, owner), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	payment := models.Payment{
		Amount:    150,
		Method:    models.PaymentMethodCash,
		Reference: "PAY-TEST-000002",
		OrderID:   order.ID,
	}
	require.NoError(t, db.Create(&payment).Error)

	w = performRequest(r, "GET", "/api/payments/order/"+order.ID.String(),
		bearerToken(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/api/payments/order/"+order.ID.String(),
		bearerToken(t, stranger), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t)
	owner := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)
	product := createService(t, db, models.ServiceCategoryProduct)
	order := createOrder(t, db, owner, product, models.OrderPending)

	payment := models.Payment{
		Amount:    150,
		Method:    models.PaymentMethodCash,
		Reference: "PAY-TEST-000003",
		OrderID:   order.ID,
	}
	require.NoError(t, db.Create(&payment).Error)

	w := performRequest(r, "PUT", "/api/payments/"+payment.ID.String()+"/status",
		bearerToken(t, admin), map[string]string{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, "PUT", "/api/payments/"+payment.ID.String()+"/status",
		bearerToken(t, admin), map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Payment
	require.NoError(t, db.First(&got, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentCompleted, got.Status)
}
