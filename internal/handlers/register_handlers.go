package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uniformes-app/backoffice/docs"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/middleware"
	"github.com/uniformes-app/backoffice/internal/platform/config"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePaymentMethod(fl.Field().String())
			return err == nil
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services)

	// Authenticated API routes
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Ledger resources are registered twice: once on
// the business-wide group and once nested under a school, which sets the
// scope the handlers operate in.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerSchoolRoutes(v1, services.School)

	// Business-wide ledger
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
	registerExpenseRoutes(v1, services.Expense)

	// Per-school ledger and operations
	school := v1.Group("/schools/:schoolID")
	registerAccountRoutes(school, services.Account)
	registerTransactionRoutes(school, services.Transaction)
	registerExpenseRoutes(school, services.Expense)
	registerInventoryRoutes(school, services.Inventory)
	registerOrderRoutes(school, services.Order)
	registerSaleRoutes(school, services.Sale)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
