package routes

import (
	"time"

	"vijayfix/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/services", hb.GetServices)
		api.GET("/technicians", hb.GetTechnicians)
		api.GET("/technicians/:id", hb.GetTechnician)
	}
}

// RegisterDiagnosisRoutes registers the photo diagnosis endpoint.
func RegisterDiagnosisRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/diagnosis", hb.Diagnose)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/overview", hb.AdminHandler.GetOverview)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Role", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterDiagnosisRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterTechnicianRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
