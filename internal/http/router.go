package api

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	intconfig "quickrent/internal/config"
	"quickrent/internal/gateway"
	h "quickrent/internal/http/handlers"
	"quickrent/internal/http/middleware"
)

func NewRouter(env intconfig.Env, gw *gateway.Client) *gin.Engine {
	h.Configure(env, gw)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-paystack-signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		zap.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := []byte(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Public listings
		api.GET("/apartments", h.ListApartments)
		api.GET("/apartments/:id", h.GetApartment)

		// Gateway callback; authenticated by signature, not session
		api.POST("/payments/webhook", h.PaystackWebhook)

		// Tenant
		tenant := api.Group("")
		tenant.Use(middleware.RequireAuth(secret))
		tenant.POST("/bookings", h.CreateBooking)
		tenant.GET("/bookings/mine", h.MyBookings)
		tenant.POST("/bookings/:id/pay", h.StartPayment)
		tenant.GET("/bookings/:id/receipt", h.BookingReceipt)
		tenant.POST("/payments/confirm", h.ConfirmPayment)
		tenant.POST("/payments/cancel", h.CancelPayment)

		// Landlord
		landlords := api.Group("")
		landlords.Use(middleware.RequireAuth(secret), middleware.RequireRole("landlord"))
		landlords.POST("/apartments", h.CreateApartment)
		landlords.PUT("/apartments/:id", h.UpdateApartment)
		landlords.POST("/landlords/payout-account", h.SetupPayoutAccount)
		landlords.GET("/landlords/apartments", h.MyApartments)

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(secret), middleware.RequireRole("admin"))
		admin.GET("/config", h.GetAdminConfig)
		admin.PUT("/config", h.UpdateAdminConfig)
		admin.GET("/reports/summary", h.RevenueSummaryReport)
		admin.GET("/reports/monthly", h.MonthlyRevenueReport)
	}

	return r
}
