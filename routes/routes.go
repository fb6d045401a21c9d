package routes

import (
	"net/http"
	"time"

	"auxin/handlers"
	"auxin/middleware"
	"auxin/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-in, registration, and the Google
// handshake endpoints. The provider callback lives outside /api because the
// popup is redirected to it directly.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store *utils.SessionStore) {
	r.GET("/auth/google/callback", hb.GoogleCallback)

	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Login)
		api.POST("/register", hb.Register)
		api.POST("/verify", hb.Verify)
		api.POST("/forgot-password", hb.ForgotPassword)
		api.POST("/reset-password/:token", hb.ResetPassword)
		api.POST("/employee/login", hb.EmployeeLogin)
		api.POST("/admin/login", hb.AdminLogin)

		api.POST("/google/start", hb.GoogleStart)
		api.GET("/google/wait", hb.GoogleWait)
		api.GET("/google/status", hb.GoogleStatus)
		api.POST("/google/popup-closed", hb.GooglePopupClosed)

		api.POST("/logout", middleware.JWTAuthMiddleware(store), hb.Logout)
	}
}

// RegisterBookingRoutes sets up the scheduling wizard and appointment
// endpoints. The catalogue endpoints are public; everything else requires a
// signed-in session.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store *utils.SessionStore) {
	r.GET("/api/appointments/meeting-durations/public", hb.MeetingDurations)
	r.GET("/api/appointments/meeting-categories/public", hb.MeetingCategories)

	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(store))
		api.POST("/session", hb.StartWizardSession)
		api.GET("/session/:sessionID", hb.GetWizardSession)
		api.PUT("/session/:sessionID/date", hb.SelectDate)
		api.PUT("/session/:sessionID/duration", hb.SelectDuration)
		api.PUT("/session/:sessionID/time", hb.SelectTime)
		api.PUT("/meeting-form", hb.SaveMeetingForm)
		api.GET("/meeting-form", hb.MeetingForm)
		api.POST("/book", hb.ConfirmBooking)
		api.GET("/my-appointments", hb.MyAppointments)
		api.DELETE("/:id", hb.CancelAppointment)
	}
}

// RegisterPaymentRoutes sets up the PayPal redirect bridge endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store *utils.SessionStore) {
	api := r.Group("/api/paypal")
	{
		api.Use(middleware.JWTAuthMiddleware(store))
		api.POST("/create-order", hb.CreateOrder)
		api.POST("/capture-order", hb.CaptureOrder)
		api.GET("/pending", hb.PendingOrder)
	}
}

// RegisterDashboardRoutes sets up the dashboard aggregation endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store *utils.SessionStore) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(store))
	{
		api.GET("/projects/my-projects", hb.MyProjects)
		api.GET("/projects/:id/tasks", hb.ProjectTasks)
		api.GET("/notifications", hb.Notifications)
		api.PATCH("/notifications/:id/read", hb.MarkNotificationRead)
		api.PATCH("/notifications/read-all", hb.MarkAllNotificationsRead)
		api.GET("/admin/clients/user/billing-info", hb.BillingInfo)
		api.PATCH("/admin/clients/user/billing-info", hb.UpdateBillingInfo)
		api.GET("/invoices/my-invoices", hb.MyInvoices)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Auxin"})
	})
}

// SetupRouter configures CORS and registers every route group.
func SetupRouter(r *gin.Engine, hb *handlers.HandlerBundle, store *utils.SessionStore) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb, store)
	RegisterBookingRoutes(r, hb, store)
	RegisterPaymentRoutes(r, hb, store)
	RegisterDashboardRoutes(r, hb, store)
}
