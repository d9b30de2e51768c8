// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/isonexus/iso-nexus-backend/internal/models"
	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/store"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

type CatalogHandler struct {
	catalog         *store.CatalogStore
	entitlements    *store.EntitlementStore
	purchaseService *services.PurchaseService
}

func NewCatalogHandler(catalog *store.CatalogStore, entitlements *store.EntitlementStore, purchaseService *services.PurchaseService) *CatalogHandler {
	return &CatalogHandler{
		catalog:         catalog,
		entitlements:    entitlements,
		purchaseService: purchaseService,
	}
}

// DocumentView is a document annotated with the viewer's entitlement state.
type DocumentView struct {
	models.Document
	Purchased    bool `json:"purchased"`
	Downloadable bool `json:"downloadable"`
	Downloading  bool `json:"downloading"`
}

// GET /documents
func (h *CatalogHandler) GetDocuments(c *gin.Context) {
	sessionID, _ := utils.GetSessionIDFromContext(c)
	purchased := h.entitlements.Purchased(sessionID)

	filter := c.DefaultQuery("filter", "ALL")
	switch filter {
	case "ALL", "FREE", "PAID":
	default:
		utils.BadRequestResponse(c, "filter must be one of ALL, FREE, PAID", nil)
		return
	}

	views := make([]DocumentView, 0)
	for _, doc := range h.catalog.ListDocuments() {
		if filter == "FREE" && !doc.IsFree() {
			continue
		}
		if filter == "PAID" && doc.IsFree() {
			continue
		}
		views = append(views, h.viewOf(doc, purchased))
	}

	utils.SuccessResponse(c, gin.H{"documents": views})
}

// GET /documents/:id
func (h *CatalogHandler) GetDocument(c *gin.Context) {
	doc, err := h.catalog.GetDocument(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Document not found")
		return
	}

	sessionID, _ := utils.GetSessionIDFromContext(c)
	utils.SuccessResponse(c, gin.H{"document": h.viewOf(doc, h.entitlements.Purchased(sessionID))})
}

// POST /documents/:id/action
//
// The single act-on-document entry point: free or owned documents start the
// download simulation, everything else opens checkout.
func (h *CatalogHandler) DocumentAction(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Session is not initialized")
		return
	}

	outcome, err := h.purchaseService.StartDocumentAction(sessionID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "Document not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, outcome)
}

// GET /site-config
func (h *CatalogHandler) GetSiteConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"site_config": h.catalog.SiteConfig()})
}

func (h *CatalogHandler) viewOf(doc models.Document, purchased map[string]struct{}) DocumentView {
	_, owned := purchased[doc.ID]
	return DocumentView{
		Document:     doc,
		Purchased:    owned,
		Downloadable: services.IsDownloadable(doc, purchased),
		Downloading:  h.purchaseService.IsDownloading(doc.ID),
	}
}
