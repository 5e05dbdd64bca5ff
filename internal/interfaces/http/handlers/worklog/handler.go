// Package worklog exposes the work-log HTTP surface. Business rejections
// travel inside a successful envelope; HTTP error codes are reserved for
// malformed requests and failures.
package worklog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worklog/internal/application/worklog/usecases"
	domain "worklog/internal/domain/worklog"
	"worklog/internal/interfaces/http/middleware"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
	"worklog/internal/shared/utils"
)

type Handler struct {
	startWorkUC      usecases.StartWorkExecutor
	stopWorkUC       usecases.StopWorkExecutor
	whoIsWorkingOnUC usecases.WhoIsWorkingOnExecutor
	activeTaskUC     usecases.ActiveTaskExecutor
	latestTaskUC     usecases.LatestTaskExecutor
	listWorkLogUC    usecases.ListWorkLogExecutor
	timelineUC       usecases.TimelineExecutor
	logger           logger.Interface
}

func NewHandler(
	startWorkUC usecases.StartWorkExecutor,
	stopWorkUC usecases.StopWorkExecutor,
	whoIsWorkingOnUC usecases.WhoIsWorkingOnExecutor,
	activeTaskUC usecases.ActiveTaskExecutor,
	latestTaskUC usecases.LatestTaskExecutor,
	listWorkLogUC usecases.ListWorkLogExecutor,
	timelineUC usecases.TimelineExecutor,
) *Handler {
	return &Handler{
		startWorkUC:      startWorkUC,
		stopWorkUC:       stopWorkUC,
		whoIsWorkingOnUC: whoIsWorkingOnUC,
		activeTaskUC:     activeTaskUC,
		latestTaskUC:     latestTaskUC,
		listWorkLogUC:    listWorkLogUC,
		timelineUC:       timelineUC,
		logger:           logger.NewLogger(),
	}
}

type StartWorkRequest struct {
	TicketID uint  `json:"ticket_id" binding:"required"`
	When     int64 `json:"when"`
}

type StopWorkRequest struct {
	ProjectID uint   `json:"project_id" binding:"required"`
	StopTime  int64  `json:"stop_time"`
	Comment   string `json:"comment"`
}

// StartWork handles POST /worklog/start
func (h *Handler) StartWork(c *gin.Context) {
	var req StartWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for start work", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.StartWorkCommand{
		Username: middleware.GetUsername(c),
		TicketID: req.TicketID,
		When:     req.When,
	}

	result, err := h.startWorkUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// StopWork handles POST /worklog/stop
func (h *Handler) StopWork(c *gin.Context) {
	var req StopWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for stop work", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.StopWorkCommand{
		Username:  middleware.GetUsername(c),
		ProjectID: req.ProjectID,
		StopTime:  req.StopTime,
		Comment:   req.Comment,
	}

	result, err := h.stopWorkUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// WhoIsWorkingOn handles GET /worklog/tickets/:id/worker
func (h *Handler) WhoIsWorkingOn(c *gin.Context) {
	ticketID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.whoIsWorkingOnUC.Execute(c.Request.Context(), usecases.WhoIsWorkingOnQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ActiveTask handles GET /worklog/active
func (h *Handler) ActiveTask(c *gin.Context) {
	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.activeTaskUC.Execute(c.Request.Context(), usecases.ActiveTaskQuery{
		Username:  middleware.GetUsername(c),
		ProjectID: projectID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// LatestTask handles GET /worklog/latest
func (h *Handler) LatestTask(c *gin.Context) {
	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Anyone may ask about another user's latest task, as the project
	// pages do; without a username the caller asks about themselves.
	username := c.Query("username")
	if username == "" {
		username = middleware.GetUsername(c)
	}

	result, err := h.latestTaskUC.Execute(c.Request.Context(), usecases.LatestTaskQuery{
		Username:  username,
		ProjectID: projectID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListWorkLog handles GET /worklog/projects/:id/log
func (h *Handler) ListWorkLog(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListWorkLogQuery{
		ProjectID: projectID,
		Mode:      domain.ListMode(c.DefaultQuery("mode", string(domain.ModeAll))),
		Worker:    c.Query("username"),
	}

	result, err := h.listWorkLogUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Timeline handles GET /worklog/projects/:id/timeline
func (h *Handler) Timeline(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	from, err := parseInt64Query(c, "from")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	to, err := parseInt64Query(c, "to")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.timelineUC.Execute(c.Request.Context(), usecases.TimelineQuery{
		ProjectID: projectID,
		From:      from,
		To:        to,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(value), nil
}

func parseUintQuery(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError(name + " query parameter is required")
	}
	return uint(value), nil
}

func parseInt64Query(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, errors.NewValidationError(name + " query parameter is required")
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid " + name + " query parameter")
	}
	return value, nil
}
