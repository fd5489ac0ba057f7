package mappers

import (
	"stepsign/internal/domain/session"
	"stepsign/internal/infrastructure/persistence/models"
)

func SessionToModel(s *session.Session) *models.SessionModel {
	model := &models.SessionModel{
		ID:             s.ID(),
		DeviceID:       s.DeviceID(),
		StartTime:      s.StartTime(),
		EndTime:        s.EndTime(),
		TotalSteps:     s.TotalSteps(),
		TotalDistance:  s.TotalDistance(),
		AvgCadence:     s.AvgCadence(),
		CaloriesBurned: s.CaloriesBurned(),
		CreatedAt:      s.CreatedAt(),
	}

	if len(s.Payload()) > 0 {
		model.Payload = s.Payload()
	}

	return model
}

func SessionToDomain(model *models.SessionModel) *session.Session {
	return session.ReconstructSession(session.SessionReconstructParams{
		ID:             model.ID,
		DeviceID:       model.DeviceID,
		StartTime:      model.StartTime,
		EndTime:        model.EndTime,
		TotalSteps:     model.TotalSteps,
		TotalDistance:  model.TotalDistance,
		AvgCadence:     model.AvgCadence,
		CaloriesBurned: model.CaloriesBurned,
		Payload:        model.Payload,
		CreatedAt:      model.CreatedAt,
	})
}
