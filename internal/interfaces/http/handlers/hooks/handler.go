// Package hooks receives change callbacks from the surrounding tracker.
package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worklog/internal/application/worklog/usecases"
	"worklog/internal/shared/logger"
	"worklog/internal/shared/utils"
)

type Handler struct {
	ticketChangedUC usecases.TicketChangedExecutor
	logger          logger.Interface
}

func NewHandler(ticketChangedUC usecases.TicketChangedExecutor) *Handler {
	return &Handler{
		ticketChangedUC: ticketChangedUC,
		logger:          logger.NewLogger(),
	}
}

type TicketChangedRequest struct {
	TicketID  uint   `json:"ticket_id" binding:"required"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status" binding:"required"`
	When      int64  `json:"when"`
}

// TicketChanged handles POST /hooks/ticket-changed
func (h *Handler) TicketChanged(c *gin.Context) {
	var req TicketChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for ticket changed hook", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.TicketChangedCommand{
		TicketID:  req.TicketID,
		OldStatus: req.OldStatus,
		NewStatus: req.NewStatus,
		When:      req.When,
	}

	result, err := h.ticketChangedUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
