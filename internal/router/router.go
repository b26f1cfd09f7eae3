package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "docmap/internal/apidocs" // registers the OpenAPI document
	"docmap/internal/handler"
	"docmap/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Session *handler.SessionHandler
	Catalog *handler.CatalogHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Catalog and rule set configuration
	v1.GET("/biz-models", h.Catalog.ListBizModels)
	v1.GET("/biz-models/:id", h.Catalog.GetBizModel)
	v1.GET("/biz-models/:id/target-paths", h.Catalog.TargetPaths)
	v1.GET("/templates", h.Catalog.ListTemplates)
	v1.POST("/templates/search", h.Catalog.SearchTemplates)

	ruleSets := v1.Group("/rule-sets")
	ruleSets.GET("", h.Catalog.ListRuleSets)
	ruleSets.GET("/:id", h.Catalog.GetRuleSet)
	ruleSets.PUT("/:id", h.Catalog.ReplaceRuleSet)
	ruleSets.POST("/:id/header-rules", h.Catalog.UpsertHeaderRule)
	ruleSets.DELETE("/:id/header-rules/:ruleId", h.Catalog.DeleteHeaderRule)
	ruleSets.POST("/:id/item-rules/:group", h.Catalog.UpsertItemRule)
	ruleSets.DELETE("/:id/item-rules/:group/:ruleId", h.Catalog.DeleteItemRule)

	// Review sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", h.Session.Start)
	sessions.GET("/:id", h.Session.Get)
	sessions.DELETE("/:id", h.Session.Discard)
	sessions.POST("/:id/reset", h.Session.Reset)
	sessions.POST("/:id/partner/identify", h.Session.IdentifyPartner)
	sessions.PUT("/:id/partner", h.Session.SetPartner)
	sessions.GET("/:id/templates", h.Session.Templates)
	sessions.GET("/:id/templates/suggestion", h.Session.SuggestTemplate)
	sessions.PUT("/:id/template", h.Session.SelectTemplate)
	sessions.PUT("/:id/rule-set", h.Session.SelectRuleSet)
	sessions.POST("/:id/parse", h.Session.Parse)

	sessions.PATCH("/:id/header/:fieldId", h.Session.EditHeader)
	sessions.POST("/:id/header/:fieldId/confirm", h.Session.ConfirmHeader)
	sessions.PATCH("/:id/items/:row/:fieldId", h.Session.EditItem)
	sessions.POST("/:id/items/:row/:fieldId/confirm", h.Session.ConfirmItem)

	sessions.GET("/:id/export/csv", h.Session.ExportCSV)
	sessions.GET("/:id/export/xlsx", h.Session.ExportXLSX)
	sessions.POST("/:id/export/email", h.Session.EmailExport)

	sessions.POST("/:id/triggers", h.Session.Trigger)
	sessions.GET("/:id/triggers", h.Session.ListTriggers)
	sessions.GET("/:id/audit", h.Session.AuditTrail)

	return r
}
