package usecases

import (
	"context"

	"worklog/internal/application/worklog/dto"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type TimelineQuery struct {
	ProjectID uint
	From      int64
	To        int64
}

type TimelineResult struct {
	Events []dto.EventDTO `json:"events"`
}

type TimelineUseCase struct {
	repo   worklog.Repository
	logger logger.Interface
}

func NewTimelineUseCase(repo worklog.Repository, logger logger.Interface) *TimelineUseCase {
	return &TimelineUseCase{repo: repo, logger: logger}
}

func (uc *TimelineUseCase) Execute(ctx context.Context, q TimelineQuery) (*TimelineResult, error) {
	if q.ProjectID == 0 {
		return nil, errors.NewValidationError("project ID is required")
	}
	if q.From > q.To {
		return nil, errors.NewValidationError("time range start is after its end")
	}

	events, err := uc.repo.TimelineEvents(ctx, q.ProjectID, q.From, q.To)
	if err != nil {
		uc.logger.Errorw("failed to load timeline events", "project_id", q.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to load timeline events", err.Error())
	}

	return &TimelineResult{Events: dto.EventsToDTO(events)}, nil
}
