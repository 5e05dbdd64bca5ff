package usecases

import (
	"context"

	"worklog/internal/application/worklog/dto"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type LatestTaskQuery struct {
	Username  string
	ProjectID uint
}

type LatestTaskResult struct {
	Task *dto.EntryDTO `json:"task"`
}

// LatestTaskUseCase returns the worker's most recent task whether or not
// it is still open, for the "what was I doing" view.
type LatestTaskUseCase struct {
	repo   worklog.Repository
	logger logger.Interface
}

func NewLatestTaskUseCase(repo worklog.Repository, logger logger.Interface) *LatestTaskUseCase {
	return &LatestTaskUseCase{repo: repo, logger: logger}
}

func (uc *LatestTaskUseCase) Execute(ctx context.Context, q LatestTaskQuery) (*LatestTaskResult, error) {
	if q.ProjectID == 0 {
		return nil, errors.NewValidationError("project ID is required")
	}
	if q.Username == "" || q.Username == worklog.AnonymousUser {
		return &LatestTaskResult{}, nil
	}

	latest, err := uc.repo.LatestForWorker(ctx, q.Username, q.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to look up latest task", "worker", q.Username, "project_id", q.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to look up latest task", err.Error())
	}
	if latest == nil {
		return &LatestTaskResult{}, nil
	}

	return &LatestTaskResult{Task: dto.EntryToDTO(latest)}, nil
}
