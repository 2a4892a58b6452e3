package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.Order{},
		&models.Photo{},
		&models.Payment{},
		&models.Gallery{},
		&models.ReminderLog{},
	))

	config.DB = db
	return db
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())

	bookings := api.Group("/bookings")
	bookings.POST("", CreateBooking)
	bookings.GET("/my", GetMyBookings)
	bookings.DELETE("/my/:id", CancelMyBooking)
	bookings.DELETE("/my/:id/delete", DeleteMyBooking)
	bookings.POST("/my/batch-delete", BatchDeleteMyBookings)
	bookingAdmin := bookings.Group("", utils.AdminMiddleware())
	bookingAdmin.GET("", GetBookings)
	bookingAdmin.GET("/:id", GetBookingByID)
	bookingAdmin.PATCH("/:id/status", TransitionBookingStatus)
	bookingAdmin.PUT("/:id", UpdateBooking)
	bookingAdmin.PATCH("/:id/restore", RestoreBooking)
	bookingAdmin.DELETE("/:id", DeleteBooking)
	bookingAdmin.POST("/batch-delete", BatchDeleteBookings)
	bookingAdmin.POST("/batch-restore", BatchRestoreBookings)

	orders := api.Group("/orders")
	orders.POST("", CreateOrder)
	orders.GET("/my", GetMyOrders)
	orders.DELETE("/my/:id", CancelMyOrder)
	orders.DELETE("/my/:id/delete", DeleteMyOrder)
	orders.POST("/my/batch-delete", BatchDeleteMyOrders)
	orderAdmin := orders.Group("", utils.AdminMiddleware())
	orderAdmin.GET("", GetOrders)
	orderAdmin.GET("/:id", GetOrderByID)
	orderAdmin.PATCH("/:id/status", TransitionOrderStatus)
	orderAdmin.PUT("/:id", UpdateOrder)
	orderAdmin.PATCH("/:id/restore", RestoreOrder)
	orderAdmin.DELETE("/:id", DeleteOrder)
	orderAdmin.POST("/batch-delete", BatchDeleteOrders)
	orderAdmin.POST("/batch-restore", BatchRestoreOrders)

	photos := api.Group("/photos")
	photos.GET("/order/:orderId", GetPhotosByOrder)
	photoAdmin := photos.Group("", utils.AdminMiddleware())
	photoAdmin.POST("", CreatePhoto)
	photoAdmin.GET("", GetPhotos)
	photoAdmin.PUT("/:id/edited", AttachEditedPhoto)

	payments := api.Group("/payments")
	payments.POST("", CreatePayment)
	payments.GET("/order/:orderId", GetMyPaymentByOrder)
	paymentAdmin := payments.Group("", utils.AdminMiddleware())
	paymentAdmin.GET("", GetPayments)
	paymentAdmin.PUT("/:id/status", UpdatePaymentStatus)

	return r
}

// createUser skips the BeforeCreate hook so tests do not pay the bcrypt cost.
func createUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    uuid.NewString() + "@example.com",
		Password: "irrelevant-hash",
		Role:     role,
	}
	require.NoError(t, db.Session(&gorm.Session{SkipHooks: true}).Create(&user).Error)
	return user
}

func createService(t *testing.T, db *gorm.DB, category string) models.Service {
	t.Helper()
	service := models.Service{
		Name:     "Test " + category,
		Price:    150,
		Category: category,
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func createBooking(t *testing.T, db *gorm.DB, user models.User, service models.Service, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		Date:      "2026-10-01",
		Time:      "14:00",
		Location:  "Studio A",
		Status:    status,
		UserID:    user.ID,
		ServiceID: service.ID,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func createOrder(t *testing.T, db *gorm.DB, user models.User, service models.Service, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		DeliveryMethod: models.DeliveryMethodPickup,
		Status:         status,
		PaymentStatus:  models.OrderUnpaid,
		UserID:         user.ID,
		ServiceID:      service.ID,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func performRequest(r http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
