package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string, healthCheck func() error) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if err := healthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1/auth")
	{
		public.POST("/signup", handler.signUp)
		public.POST("/signin", handler.signIn)
		public.POST("/demo", handler.demoSignIn)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/session", handler.session)

		protected.GET("/trips", handler.listTrips)
		protected.POST("/trips", handler.createTrip)
		protected.POST("/trips/import", handler.importTrips)

		protected.GET("/analytics/summary", handler.analyticsSummary)

		protected.GET("/customers", handler.listCustomers)
		protected.GET("/suppliers", handler.listSuppliers)
		protected.GET("/vehicles", handler.listVehicles)
	}

	return router
}
