package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/omarrayoubb/gateway-sub003/cmd/docs"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
	"github.com/omarrayoubb/gateway-sub003/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterV1Routes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// RegisterV1Routes delegates route registration of the /api/v1 group to the entity handlers.
func RegisterV1Routes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal, services.Posting)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
	registerSubledgerRoutes(v1, services.Subledger)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
