package usecases

import (
	"context"

	"worklog/internal/application/worklog/dto"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type ActiveTaskQuery struct {
	Username  string
	ProjectID uint
}

type ActiveTaskResult struct {
	Task *dto.EntryDTO `json:"task"`
}

type ActiveTaskUseCase struct {
	repo   worklog.Repository
	logger logger.Interface
}

func NewActiveTaskUseCase(repo worklog.Repository, logger logger.Interface) *ActiveTaskUseCase {
	return &ActiveTaskUseCase{repo: repo, logger: logger}
}

func (uc *ActiveTaskUseCase) Execute(ctx context.Context, q ActiveTaskQuery) (*ActiveTaskResult, error) {
	if q.ProjectID == 0 {
		return nil, errors.NewValidationError("project ID is required")
	}

	active, err := activeTask(ctx, uc.repo, q.Username, q.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to look up active task", "worker", q.Username, "project_id", q.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to look up active task", err.Error())
	}
	if active == nil {
		return &ActiveTaskResult{}, nil
	}

	return &ActiveTaskResult{Task: dto.EntryToDTO(active)}, nil
}
