package session

import (
	"fmt"
	"time"

	"stepsign/internal/shared/biztime"
)

// Session is a completed step-tracking session uploaded from a device.
// Sessions are write-once: created on upload, immutable afterwards, never
// deleted.
type Session struct {
	id             uint
	deviceID       string
	startTime      int64 // epoch seconds
	endTime        int64
	totalSteps     int64
	totalDistance  float64 // meters
	avgCadence     float64 // steps/min
	caloriesBurned float64
	// payload is the raw session data uploaded by the device, stored verbatim.
	payload map[string]interface{}

	createdAt time.Time
}

// NewSession validates and creates a session from an upload. Device ID,
// start time, end time and the step count are required; the derived metrics
// default to zero.
func NewSession(deviceID string, startTime, endTime, totalSteps int64, totalDistance, avgCadence, caloriesBurned float64, payload map[string]interface{}) (*Session, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	if startTime <= 0 {
		return nil, fmt.Errorf("start time is required")
	}
	if endTime <= 0 {
		return nil, fmt.Errorf("end time is required")
	}
	if endTime < startTime {
		return nil, fmt.Errorf("end time %d precedes start time %d", endTime, startTime)
	}
	if totalSteps < 0 {
		return nil, fmt.Errorf("total steps must be non-negative")
	}

	if payload == nil {
		payload = make(map[string]interface{})
	}

	return &Session{
		deviceID:       deviceID,
		startTime:      startTime,
		endTime:        endTime,
		totalSteps:     totalSteps,
		totalDistance:  totalDistance,
		avgCadence:     avgCadence,
		caloriesBurned: caloriesBurned,
		payload:        payload,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func (s *Session) ID() uint {
	return s.id
}

func (s *Session) DeviceID() string {
	return s.deviceID
}

func (s *Session) StartTime() int64 {
	return s.startTime
}

func (s *Session) EndTime() int64 {
	return s.endTime
}

func (s *Session) TotalSteps() int64 {
	return s.totalSteps
}

func (s *Session) TotalDistance() float64 {
	return s.totalDistance
}

func (s *Session) AvgCadence() float64 {
	return s.avgCadence
}

func (s *Session) CaloriesBurned() float64 {
	return s.caloriesBurned
}

func (s *Session) Payload() map[string]interface{} {
	return s.payload
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// SetID sets the session ID after persistence (used by repository after Create)
func (s *Session) SetID(id uint) {
	s.id = id
}

// SessionReconstructParams carries persisted state for rehydration.
type SessionReconstructParams struct {
	ID             uint
	DeviceID       string
	StartTime      int64
	EndTime        int64
	TotalSteps     int64
	TotalDistance  float64
	AvgCadence     float64
	CaloriesBurned float64
	Payload        map[string]interface{}
	CreatedAt      time.Time
}

// ReconstructSession rebuilds a Session from persistence without validation.
func ReconstructSession(p SessionReconstructParams) *Session {
	payload := p.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}

	return &Session{
		id:             p.ID,
		deviceID:       p.DeviceID,
		startTime:      p.StartTime,
		endTime:        p.EndTime,
		totalSteps:     p.TotalSteps,
		totalDistance:  p.TotalDistance,
		avgCadence:     p.AvgCadence,
		caloriesBurned: p.CaloriesBurned,
		payload:        payload,
		createdAt:      p.CreatedAt,
	}
}
