package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type GetScopeSettingsQuery struct {
	ScopeID uint
}

type GetScopeSettingsResult struct {
	ScopeID   uint              `json:"scope_id"`
	Values    map[string]string `json:"values"`
	Effective worklog.Settings  `json:"effective"`
}

// GetScopeSettingsUseCase returns both the raw stored values of a scope
// and the effective settings after defaults are applied.
type GetScopeSettingsUseCase struct {
	store    worklog.SettingsStore
	provider worklog.SettingsProvider
	logger   logger.Interface
}

func NewGetScopeSettingsUseCase(
	store worklog.SettingsStore,
	provider worklog.SettingsProvider,
	logger logger.Interface,
) *GetScopeSettingsUseCase {
	return &GetScopeSettingsUseCase{store: store, provider: provider, logger: logger}
}

func (uc *GetScopeSettingsUseCase) Execute(ctx context.Context, q GetScopeSettingsQuery) (*GetScopeSettingsResult, error) {
	values, err := uc.store.Values(ctx, q.ScopeID)
	if err != nil {
		uc.logger.Errorw("failed to load scope values", "scope_id", q.ScopeID, "error", err)
		return nil, errors.NewInternalError("failed to load scope settings", err.Error())
	}

	effective, err := uc.provider.Settings(ctx, q.ScopeID)
	if err != nil {
		uc.logger.Errorw("failed to load effective settings", "scope_id", q.ScopeID, "error", err)
		return nil, errors.NewInternalError("failed to load scope settings", err.Error())
	}

	return &GetScopeSettingsResult{ScopeID: q.ScopeID, Values: values, Effective: effective}, nil
}

type UpdateScopeSettingsCommand struct {
	ScopeID uint
	Values  map[string]string
}

type UpdateScopeSettingsResult struct {
	ScopeID   uint             `json:"scope_id"`
	Effective worklog.Settings `json:"effective"`
}

// UpdateScopeSettingsUseCase validates and upserts scope settings. Unlike
// the tolerant read path, writes of unknown keys or unparsable values are
// rejected so admin typos surface immediately instead of silently falling
// back to defaults.
type UpdateScopeSettingsUseCase struct {
	store    worklog.SettingsStore
	provider worklog.SettingsProvider
	logger   logger.Interface
}

func NewUpdateScopeSettingsUseCase(
	store worklog.SettingsStore,
	provider worklog.SettingsProvider,
	logger logger.Interface,
) *UpdateScopeSettingsUseCase {
	return &UpdateScopeSettingsUseCase{store: store, provider: provider, logger: logger}
}

func (uc *UpdateScopeSettingsUseCase) Execute(ctx context.Context, cmd UpdateScopeSettingsCommand) (*UpdateScopeSettingsResult, error) {
	if len(cmd.Values) == 0 {
		return nil, errors.NewValidationError("no settings supplied")
	}

	for key, raw := range cmd.Values {
		if err := validateSetting(key, raw); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.store.SetValues(ctx, cmd.ScopeID, cmd.Values); err != nil {
		uc.logger.Errorw("failed to store scope settings", "scope_id", cmd.ScopeID, "error", err)
		return nil, errors.NewInternalError("failed to store scope settings", err.Error())
	}

	effective, err := uc.provider.Settings(ctx, cmd.ScopeID)
	if err != nil {
		uc.logger.Errorw("failed to reload effective settings", "scope_id", cmd.ScopeID, "error", err)
		return nil, errors.NewInternalError("failed to reload scope settings", err.Error())
	}

	uc.logger.Infow("scope settings updated", "scope_id", cmd.ScopeID, "keys", len(cmd.Values))

	return &UpdateScopeSettingsResult{ScopeID: cmd.ScopeID, Effective: effective}, nil
}

func validateSetting(key, raw string) error {
	// Empty values are deletions and always valid.
	if raw == "" {
		return nil
	}

	switch key {
	case worklog.KeyAutoComment,
		worklog.KeyAutoStopOnClose,
		worklog.KeyAutoReassignOnStart,
		worklog.KeyAllowTaskSwitch,
		worklog.KeyRecordHoursField,
		worklog.KeyRecordTotalHours:
		if _, err := strconv.ParseBool(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("setting %q must be a boolean, got %q", key, raw)
		}
	case worklog.KeyRoundUpMinutes:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			return fmt.Errorf("setting %q must be a positive integer, got %q", key, raw)
		}
	case worklog.KeyReassignStatus, worklog.KeyReassignResolution:
		// Free-form tracker vocabulary.
	case worklog.KeyEligibleStatuses:
		if len(worklog.SplitStatuses(raw)) == 0 {
			return fmt.Errorf("setting %q must name at least one status", key)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}
