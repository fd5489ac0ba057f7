package usecases

import (
	"context"
	"fmt"

	"stepsign/internal/domain/session"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

type UploadSessionCommand struct {
	DeviceID       string
	StartTime      int64
	EndTime        int64
	TotalSteps     int64
	TotalDistance  float64
	AvgCadence     float64
	CaloriesBurned float64
	SessionData    map[string]interface{}
}

type UploadSessionUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewUploadSessionUseCase(sessionRepo session.Repository, logger logger.Interface) *UploadSessionUseCase {
	return &UploadSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *UploadSessionUseCase) Execute(ctx context.Context, cmd UploadSessionCommand) (*session.Session, error) {
	sess, err := session.NewSession(
		cmd.DeviceID,
		cmd.StartTime,
		cmd.EndTime,
		cmd.TotalSteps,
		cmd.TotalDistance,
		cmd.AvgCadence,
		cmd.CaloriesBurned,
		cmd.SessionData,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.sessionRepo.Create(ctx, sess); err != nil {
		uc.logger.Errorw("failed to save session", "error", err, "device_id", cmd.DeviceID)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	uc.logger.Infow("session uploaded",
		"session_id", sess.ID(),
		"device_id", sess.DeviceID(),
		"total_steps", sess.TotalSteps())

	return sess, nil
}
