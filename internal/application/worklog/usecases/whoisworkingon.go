package usecases

import (
	"context"

	"worklog/internal/application/worklog/dto"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type WhoIsWorkingOnQuery struct {
	TicketID uint
}

type WhoIsWorkingOnResult struct {
	Open *dto.OpenWorkDTO `json:"open"`
}

type WhoIsWorkingOnUseCase struct {
	repo   worklog.Repository
	logger logger.Interface
}

func NewWhoIsWorkingOnUseCase(repo worklog.Repository, logger logger.Interface) *WhoIsWorkingOnUseCase {
	return &WhoIsWorkingOnUseCase{repo: repo, logger: logger}
}

func (uc *WhoIsWorkingOnUseCase) Execute(ctx context.Context, q WhoIsWorkingOnQuery) (*WhoIsWorkingOnResult, error) {
	if q.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	open, err := uc.repo.FindOpen(ctx, q.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to look up open work", "ticket_id", q.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to look up open work", err.Error())
	}

	return &WhoIsWorkingOnResult{Open: dto.OpenWorkToDTO(open)}, nil
}
