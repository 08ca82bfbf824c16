package plans

import (
	"net/http"

	"subscription-plans/internal/api/httperr"
	"subscription-plans/internal/apperr"

	"github.com/gin-gonic/gin"
)

// SyncPlansFromStripe imports the configured Stripe product's recurring prices as
// plans. Admin only; the check happens in the service before Stripe is called.
func (h *Handler) SyncPlansFromStripe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		httperr.Write(c, apperr.Unauthorized("User not identified"))
		return
	}

	if h.prices == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured", "code": apperr.KindInternal})
		return
	}

	result, err := h.svc.SyncPlans(c.Request.Context(), userID, h.prices)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
