// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/handlers"
	"github.com/isonexus/iso-nexus-backend/internal/middleware"
	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/store"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

// Services are constructed by the composition root (cmd/server) so it can
// shut them down; the router only wires them to the HTTP surface.
type Services struct {
	Catalog      *store.CatalogStore
	Entitlements *store.EntitlementStore
	Purchase     *services.PurchaseService
	Admin        *services.AdminService
	Assistant    *services.AssistantService
	Uploads      *services.UploadService
}

func Initialize(cfg *config.Config, logger *logrus.Logger, deps Services) *gin.Engine {
	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Entitlements, deps.Purchase)
	purchaseHandler := handlers.NewPurchaseHandler(deps.Purchase)
	adminHandler := handlers.NewAdminHandler(deps.Admin, deps.Uploads)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant)
	uploadsHandler := handlers.NewUploadsHandler(deps.Uploads)

	// Set JWT secret
	utils.SetJWTSecret(cfg.Admin.JWTSecret)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Frontend.AllowOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.Session())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Uploaded resources, served from process memory
	r.GET("/uploads/:id", uploadsHandler.ServeUpload)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Storefront routes
		documents := v1.Group("/documents")
		{
			documents.GET("", catalogHandler.GetDocuments)
			documents.GET("/:id", catalogHandler.GetDocument)
			documents.POST("/:id/action", catalogHandler.DocumentAction)
		}

		v1.GET("/site-config", catalogHandler.GetSiteConfig)

		// Checkout flow routes
		checkout := v1.Group("/checkout")
		{
			checkout.GET("", purchaseHandler.GetFlow)
			checkout.POST("/intent", purchaseHandler.ConfirmIntent)
			checkout.POST("/complete", purchaseHandler.ConfirmCompletion)
			checkout.POST("/back", purchaseHandler.GoBack)
			checkout.POST("/close", purchaseHandler.Close)
		}

		// Chat assistant routes
		chat := v1.Group("/chat")
		chat.Use(middleware.ChatRateLimit())
		{
			chat.POST("/sessions", assistantHandler.CreateSession)
			chat.POST("/sessions/:id/messages", assistantHandler.SendMessage)
			chat.GET("/sessions/:id/messages", assistantHandler.GetTranscript)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/login", middleware.LoginRateLimit(), adminHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AdminRequired())
			{
				protected.GET("/documents", adminHandler.ListDocuments)
				protected.GET("/documents/new", adminHandler.NewDocumentDraft)
				protected.POST("/documents", adminHandler.SaveDocument)
				protected.DELETE("/documents/:id", adminHandler.DeleteDocument)
				protected.PUT("/site-config", adminHandler.UpdateSiteConfig)
				protected.POST("/uploads", middleware.UploadRateLimit(), adminHandler.UploadFile)
			}
		}
	}

	return r
}
