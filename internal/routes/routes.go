package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jaswan333/hospital-golang/internal/handlers"
	"github.com/jaswan333/hospital-golang/internal/middleware"
)

// CORSMiddleware tells the browser the configured frontend origin may talk
// to us, including the Authorization header for JWT tokens.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.Default()

	// CORS must run before anything else; every response needs the headers.
	router.Use(CORSMiddleware(corsOrigin))
	router.Use(middleware.RequestID())

	api := router.Group("/api")
	{
		// --- Health Route (Public) ---
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// --- Auth Routes (Public, rate limited against brute force) ---
		authLimited := api.Group("/")
		authLimited.Use(middleware.RateLimit(rate.Limit(1), 5, "auth"))
		{
			authLimited.POST("/auth/register", h.Register)
			authLimited.POST("/auth/login", h.Login)
		}

		// --- Public Catalog Routes ---
		api.GET("/medicines", h.GetMedicines)
		api.GET("/doctors", h.GetDoctors)

		// --- Emergency Intake (Public; an emergency cannot wait for a login) ---
		emergency := api.Group("/")
		emergency.Use(middleware.RateLimit(rate.Limit(2), 10, "emergency"))
		{
			emergency.POST("/emergencies", h.CreateEmergency)
		}

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			// Orders
			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders/:id", h.GetOrder)

			// Appointments
			auth.POST("/appointments", h.CreateAppointment)
			auth.GET("/appointments/user/:userId", h.GetUserAppointments)

			// Emergencies
			auth.GET("/emergencies/user/:userId", h.GetUserEmergencies)

			// --- Admin Routes ---
			admin := auth.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				// Catalog management
				admin.POST("/medicines", h.CreateMedicine)
				admin.PUT("/medicines/:id", h.UpdateMedicine)
				admin.DELETE("/medicines/:id", h.DeleteMedicine)
				admin.GET("/medicines/low-stock", h.GetLowStockMedicines)
				admin.PATCH("/medicines/:id/stock", h.AdjustStock)

				// Order fulfilment
				admin.GET("/orders", h.GetOrders)
				admin.PUT("/orders/:id", h.UpdateOrderStatus)

				// Appointment desk
				admin.GET("/appointments", h.GetAppointments)
				admin.PUT("/appointments/:id", h.UpdateAppointment)
				admin.DELETE("/appointments/:id", h.DeleteAppointment)

				// Emergency triage
				admin.GET("/emergencies", h.GetEmergencies)
				admin.PUT("/emergencies/:id", h.UpdateEmergency)
				admin.DELETE("/emergencies/:id", h.DeleteEmergency)

				// Doctor roster
				admin.POST("/doctors", h.CreateDoctor)
				admin.PUT("/doctors/:id", h.UpdateDoctor)
				admin.DELETE("/doctors/:id", h.DeleteDoctor)

				// Dashboard + assistant
				admin.GET("/admin/dashboard-stats", h.GetAdminStats)
				admin.POST("/assistant/chat", h.ChatAssistant)
			}
		}
	}

	return router
}
