// internal/handlers/purchase.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// GET /checkout
func (h *PurchaseHandler) GetFlow(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"flow": h.purchaseService.State()})
}

// POST /checkout/intent
func (h *PurchaseHandler) ConfirmIntent(c *gin.Context) {
	h.transition(c, h.purchaseService.ConfirmIntent)
}

// POST /checkout/complete
func (h *PurchaseHandler) ConfirmCompletion(c *gin.Context) {
	h.transition(c, h.purchaseService.ConfirmCompletion)
}

// POST /checkout/back
func (h *PurchaseHandler) GoBack(c *gin.Context) {
	h.transition(c, h.purchaseService.GoBack)
}

// POST /checkout/close
func (h *PurchaseHandler) Close(c *gin.Context) {
	h.transition(c, h.purchaseService.Close)
}

func (h *PurchaseHandler) transition(c *gin.Context, fn func(sessionID string) (services.FlowState, error)) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Session is not initialized")
		return
	}

	state, err := fn(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveFlow):
			utils.NotFoundResponse(c, "No checkout in progress")
		case errors.Is(err, services.ErrCloseDisabled):
			utils.ConflictResponse(c, "Checkout cannot be closed during this step")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, "Invalid checkout transition")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"flow": state})
}
