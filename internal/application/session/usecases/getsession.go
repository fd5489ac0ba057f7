package usecases

import (
	"context"
	"errors"
	"fmt"

	"stepsign/internal/domain/session"
	apperrors "stepsign/internal/shared/errors"
)

type GetSessionUseCase struct {
	sessionRepo session.Repository
}

func NewGetSessionUseCase(sessionRepo session.Repository) *GetSessionUseCase {
	return &GetSessionUseCase{sessionRepo: sessionRepo}
}

func (uc *GetSessionUseCase) Execute(ctx context.Context, id uint) (*session.Session, error) {
	sess, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}
