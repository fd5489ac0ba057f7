// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone only determines
// date boundaries, such as the start of the daily claim window.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when no timezone is configured. The daily claim
// limit resets at local midnight, matching the upload device's locale.
const DefaultTimezone = "Local"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, initializing with the
// default if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone,
// converted to UTC for storage queries.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// EndOfDayUTC returns the end of day (23:59:59.999999999) in business
// timezone, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	endOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 23, 59, 59, 999999999, Location())
	return endOfDay.UTC()
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
