package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stepsign/internal/domain/session"
	"stepsign/internal/infrastructure/persistence/mappers"
	"stepsign/internal/infrastructure/persistence/models"
	"stepsign/internal/shared/db"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	model := mappers.SessionToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	s.SetID(model.ID)

	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uint) (*session.Session, error) {
	var model models.SessionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return mappers.SessionToDomain(&model), nil
}

func (r *SessionRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*session.Session, error) {
	if limit <= 0 {
		limit = session.DefaultListLimit
	}

	var sessionModels []models.SessionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("device_id = ?", deviceID).
		Order("start_time DESC").
		Limit(limit).
		Find(&sessionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions by device: %w", err)
	}

	sessions := make([]*session.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = mappers.SessionToDomain(&sessionModels[i])
	}

	return sessions, nil
}
