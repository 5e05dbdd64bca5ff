// Package admin exposes the scope configuration surface.
package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worklog/internal/application/worklog/usecases"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
	"worklog/internal/shared/utils"
)

type Handler struct {
	getScopeSettingsUC    *usecases.GetScopeSettingsUseCase
	updateScopeSettingsUC *usecases.UpdateScopeSettingsUseCase
	logger                logger.Interface
}

func NewHandler(
	getScopeSettingsUC *usecases.GetScopeSettingsUseCase,
	updateScopeSettingsUC *usecases.UpdateScopeSettingsUseCase,
) *Handler {
	return &Handler{
		getScopeSettingsUC:    getScopeSettingsUC,
		updateScopeSettingsUC: updateScopeSettingsUC,
		logger:                logger.NewLogger(),
	}
}

type UpdateScopeSettingsRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// GetScopeSettings handles GET /admin/scopes/:id/settings
func (h *Handler) GetScopeSettings(c *gin.Context) {
	scopeID, err := parseScopeID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getScopeSettingsUC.Execute(c.Request.Context(), usecases.GetScopeSettingsQuery{ScopeID: scopeID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateScopeSettings handles PUT /admin/scopes/:id/settings
func (h *Handler) UpdateScopeSettings(c *gin.Context) {
	scopeID, err := parseScopeID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateScopeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update scope settings", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateScopeSettingsUC.Execute(c.Request.Context(), usecases.UpdateScopeSettingsCommand{
		ScopeID: scopeID,
		Values:  req.Values,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scope settings updated", result)
}

// parseScopeID parses the scope path parameter. Scope 0, the shared
// default scope, is a valid target.
func parseScopeID(c *gin.Context) (uint, error) {
	value, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("invalid id parameter")
	}
	return uint(value), nil
}
