package routes

import (
	"photostudio-backend/config"
	"photostudio-backend/controllers"
	"photostudio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public showcase and catalog
	r.GET("/gallery", controllers.GetGallery)
	r.GET("/services", controllers.GetServices)
	r.GET("/services/:id", controllers.GetService)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			// customer-scoped: any authenticated identity
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("/my", controllers.GetMyBookings)
			bookings.DELETE("/my/:id", controllers.CancelMyBooking)
			bookings.DELETE("/my/:id/delete", controllers.DeleteMyBooking)
			bookings.POST("/my/batch-delete", controllers.BatchDeleteMyBookings)

			admin := bookings.Group("", utils.AdminMiddleware())
			{
				admin.GET("", controllers.GetBookings)
				admin.GET("/:id", controllers.GetBookingByID)
				admin.PATCH("/:id/status", controllers.TransitionBookingStatus)
				admin.PUT("/:id", controllers.UpdateBooking)
				admin.PATCH("/:id/restore", controllers.RestoreBooking)
				admin.DELETE("/:id", controllers.DeleteBooking)
				admin.POST("/batch-delete", controllers.BatchDeleteBookings)
				admin.POST("/batch-restore", controllers.BatchRestoreBookings)
			}
		}

		// Order routes, mirroring the booking set
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("/my", controllers.GetMyOrders)
			orders.DELETE("/my/:id", controllers.CancelMyOrder)
			orders.DELETE("/my/:id/delete", controllers.DeleteMyOrder)
			orders.POST("/my/batch-delete", controllers.BatchDeleteMyOrders)

			admin := orders.Group("", utils.AdminMiddleware())
			{
				admin.GET("", controllers.GetOrders)
				admin.GET("/:id", controllers.GetOrderByID)
				admin.PATCH("/:id/status", controllers.TransitionOrderStatus)
				admin.PUT("/:id", controllers.UpdateOrder)
				admin.PATCH("/:id/restore", controllers.RestoreOrder)
				admin.DELETE("/:id", controllers.DeleteOrder)
				admin.POST("/batch-delete", controllers.BatchDeleteOrders)
				admin.POST("/batch-restore", controllers.BatchRestoreOrders)
			}
		}

		// Service catalog management
		services := api.Group("/services", utils.AdminMiddleware())
		{
			services.POST("", controllers.CreateService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Photo routes
		photos := api.Group("/photos")
		{
			photos.GET("/order/:orderId", controllers.GetPhotosByOrder)

			admin := photos.Group("", utils.AdminMiddleware())
			{
				admin.POST("", controllers.CreatePhoto)
				admin.GET("", controllers.GetPhotos)
				admin.PUT("/:id/edited", controllers.AttachEditedPhoto)
			}
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("/order/:orderId", controllers.GetMyPaymentByOrder)

			admin := payments.Group("", utils.AdminMiddleware())
			{
				admin.GET("", controllers.GetPayments)
				admin.PUT("/:id/status", controllers.UpdatePaymentStatus)
			}
		}

		// Gallery management
		api.POST("/gallery", utils.AdminMiddleware(), controllers.AddGalleryPhoto)

		// User administration
		users := api.Group("/users", utils.AdminMiddleware())
		{
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUserByID)
			users.PUT("/:id/role", controllers.UpdateUserRole)
		}

		// Dashboard
		api.GET("/dashboard", utils.AdminMiddleware(), controllers.GetDashboardOverview)
	}

	return r
}
