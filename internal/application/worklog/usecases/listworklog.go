package usecases

import (
	"context"
	"fmt"

	"worklog/internal/application/worklog/dto"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type ListWorkLogQuery struct {
	ProjectID uint
	Mode      worklog.ListMode

	// Worker is required for ModeUser and ignored otherwise.
	Worker string
}

type ListWorkLogResult struct {
	Entries []*dto.EntryDTO `json:"entries"`
}

type ListWorkLogUseCase struct {
	repo   worklog.Repository
	logger logger.Interface
}

func NewListWorkLogUseCase(repo worklog.Repository, logger logger.Interface) *ListWorkLogUseCase {
	return &ListWorkLogUseCase{repo: repo, logger: logger}
}

func (uc *ListWorkLogUseCase) Execute(ctx context.Context, q ListWorkLogQuery) (*ListWorkLogResult, error) {
	if q.ProjectID == 0 {
		return nil, errors.NewValidationError("project ID is required")
	}

	mode := q.Mode
	if mode == "" {
		mode = worklog.ModeAll
	}
	if !mode.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported listing mode %q", mode))
	}
	if mode == worklog.ModeUser && q.Worker == "" {
		return nil, errors.NewValidationError("worker is required for the user listing")
	}

	entries, err := uc.repo.List(ctx, q.ProjectID, q.Worker, mode)
	if err != nil {
		uc.logger.Errorw("failed to list work log", "project_id", q.ProjectID, "mode", mode, "error", err)
		return nil, errors.NewInternalError("failed to list work log", err.Error())
	}

	return &ListWorkLogResult{Entries: dto.EntriesToDTO(entries)}, nil
}
