// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/isonexus/iso-nexus-backend/internal/models"
	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/store"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

type AdminHandler struct {
	adminService  *services.AdminService
	uploadService *services.UploadService
}

func NewAdminHandler(adminService *services.AdminService, uploadService *services.UploadService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		uploadService: uploadService,
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := h.adminService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.ErrorResponse(c, 401, "INVALID_CREDENTIALS", "Incorrect password", nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"token": token})
}

// GET /admin/documents
func (h *AdminHandler) ListDocuments(c *gin.Context) {
	category := c.DefaultQuery("category", "ALL")
	if category != "ALL" && !models.Category(category).IsValid() {
		utils.BadRequestResponse(c, "Unknown category", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"documents": h.adminService.ListDocuments(category)})
}

// GET /admin/documents/new
//
// Pre-seeds the edit form with a fresh identifier and defaults.
func (h *AdminHandler) NewDocumentDraft(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"draft": h.adminService.NewDraft()})
}

// POST /admin/documents
//
// Commits a draft. An existing identifier updates that document in place;
// a new identifier creates and prepends. Mirrors the single edit form that
// serves both cases.
func (h *AdminHandler) SaveDocument(c *gin.Context) {
	var draft services.DocumentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	doc, created, err := h.adminService.SaveDocument(draft)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	if created {
		utils.CreatedResponse(c, gin.H{"document": doc})
		return
	}
	utils.SuccessResponse(c, gin.H{"document": doc})
}

// DELETE /admin/documents/:id
//
// Requires confirm=true, the API-side equivalent of the delete confirmation
// dialog.
func (h *AdminHandler) DeleteDocument(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.BadRequestResponse(c, "Deletion must be confirmed with confirm=true", nil)
		return
	}

	if err := h.adminService.DeleteDocument(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "Document not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// PUT /admin/site-config
func (h *AdminHandler) UpdateSiteConfig(c *gin.Context) {
	var draft models.SiteConfig
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"site_config": h.adminService.UpdateSiteConfig(draft)})
}

// POST /admin/uploads
func (h *AdminHandler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	upload, err := h.uploadService.UploadFile(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"upload": upload})
}
