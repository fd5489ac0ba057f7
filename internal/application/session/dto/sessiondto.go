package dto

import (
	"time"

	"stepsign/internal/domain/session"
)

// SessionDTO is the transport representation of a session. Timestamps are
// epoch seconds, matching the device upload format.
type SessionDTO struct {
	ID             uint                   `json:"id"`
	DeviceID       string                 `json:"device_id"`
	StartTime      int64                  `json:"start_time"`
	EndTime        int64                  `json:"end_time"`
	TotalSteps     int64                  `json:"total_steps"`
	TotalDistance  float64                `json:"total_distance"`
	AvgCadence     float64                `json:"avg_cadence"`
	CaloriesBurned float64                `json:"calories_burned"`
	SessionData    map[string]interface{} `json:"session_data"`
	CreatedAt      time.Time              `json:"created_at"`
}

func FromSession(s *session.Session) *SessionDTO {
	return &SessionDTO{
		ID:             s.ID(),
		DeviceID:       s.DeviceID(),
		StartTime:      s.StartTime(),
		EndTime:        s.EndTime(),
		TotalSteps:     s.TotalSteps(),
		TotalDistance:  s.TotalDistance(),
		AvgCadence:     s.AvgCadence(),
		CaloriesBurned: s.CaloriesBurned(),
		SessionData:    s.Payload(),
		CreatedAt:      s.CreatedAt(),
	}
}

func FromSessions(sessions []*session.Session) []*SessionDTO {
	dtos := make([]*SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, FromSession(s))
	}
	return dtos
}
