package domain

import (
	"time"

	"github.com/google/uuid"
)

// DutyStatus is an ELD duty-status code.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "OFF" // off duty
	StatusSleeper DutyStatus = "SB"  // sleeper berth
	StatusDriving DutyStatus = "D"   // driving
	StatusOnDuty  DutyStatus = "ON"  // on duty, not driving
)

// DailyLog is one calendar day of a trip's ELD record. A trip has exactly one
// DailyLog per date in its [start date, end date] range; regeneration replaces
// all of a trip's logs as a unit.
type DailyLog struct {
	ID            uuid.UUID  `json:"id"`
	TripID        uuid.UUID  `json:"trip_id"`
	Date          time.Time  `json:"date"` // midnight UTC of the log's calendar day
	DriverName    string     `json:"driver_name"`
	CarrierName   string     `json:"carrier_name"`
	TruckNumber   string     `json:"truck_number"`
	TrailerNumber string     `json:"trailer_number,omitempty"`
	StartOdometer int        `json:"start_odometer"`
	EndOdometer   int        `json:"end_odometer"`
	TotalMiles    float64    `json:"total_miles"`
	Entries       []LogEntry `json:"entries"`
}

// LogEntry is one contiguous duty-status interval within a DailyLog.
//
// Invariant: a log's entries are ordered by StartTime, non-overlapping, and
// together tile the owning day's full [00:00, 24:00) window.
type LogEntry struct {
	ID         uuid.UUID  `json:"id"`
	DailyLogID uuid.UUID  `json:"daily_log_id,omitempty"`
	Status     DutyStatus `json:"status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Location   string     `json:"location"`
	Remarks    string     `json:"remarks,omitempty"`
}
