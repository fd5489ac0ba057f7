package usecases

import (
	"context"
	"fmt"

	"stepsign/internal/domain/session"
	apperrors "stepsign/internal/shared/errors"
)

type ListDeviceSessionsUseCase struct {
	sessionRepo session.Repository
}

func NewListDeviceSessionsUseCase(sessionRepo session.Repository) *ListDeviceSessionsUseCase {
	return &ListDeviceSessionsUseCase{sessionRepo: sessionRepo}
}

func (uc *ListDeviceSessionsUseCase) Execute(ctx context.Context, deviceID string, limit int) ([]*session.Session, error) {
	if deviceID == "" {
		return nil, apperrors.NewValidationError("device ID is required")
	}
	if limit <= 0 {
		limit = session.DefaultListLimit
	}

	sessions, err := uc.sessionRepo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
