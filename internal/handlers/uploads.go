// internal/handlers/uploads.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

type UploadsHandler struct {
	uploadService *services.UploadService
}

func NewUploadsHandler(uploadService *services.UploadService) *UploadsHandler {
	return &UploadsHandler{uploadService: uploadService}
}

// GET /uploads/:id
//
// Serves an uploaded resource back from process memory.
func (h *UploadsHandler) ServeUpload(c *gin.Context) {
	upload, ok := h.uploadService.Get(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Upload not found")
		return
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+upload.Filename+`"`)
	c.Data(http.StatusOK, contentType, upload.Data)
}
