package models

import (
	"time"

	"gorm.io/datatypes"
)

type SessionModel struct {
	ID             uint   `gorm:"primaryKey"`
	DeviceID       string `gorm:"index;size:128;not null"`
	StartTime      int64  `gorm:"index;not null"`
	EndTime        int64  `gorm:"not null"`
	TotalSteps     int64  `gorm:"not null;default:0"`
	TotalDistance  float64
	AvgCadence     float64
	CaloriesBurned float64
	// Full upload body, kept verbatim for reprocessing.
	Payload   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt time.Time
}

func (SessionModel) TableName() string {
	return "sessions"
}
