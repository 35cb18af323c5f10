// Package hos holds the Hours-of-Service rule functions applied by the
// itinerary planner. The rules are simplified approximations of the FMCSA
// property-carrying limits, not the full regulatory tables: a 30-minute break
// per 8 hours of driving, a 14-hour duty window reduced by hours already used
// this cycle, and a 10-hour extended rest when the window is exceeded.
//
// Every function here is pure — numeric in, numeric out — so the rules can be
// tested in isolation from the planner.
package hos

const (
	// BreakAfterDrivingHours is the contiguous driving span that triggers a
	// mandatory 30-minute break.
	BreakAfterDrivingHours = 8.0

	// BreakMinutes is the length of one mandatory driving break.
	BreakMinutes = 30.0

	// DutyWindowHours is the on-duty window available to a driver with zero
	// accumulated cycle hours.
	DutyWindowHours = 14.0

	// ExtendedRestHours is the off-duty rest inserted when a trip exceeds the
	// remaining duty window.
	ExtendedRestHours = 10.0

	// MaxCycleHours is the most on-duty hours a driver can have accumulated
	// before the trip begins (70-hour/8-day cycle).
	MaxCycleHours = 70.0

	// LoadMinutes and UnloadMinutes are the fixed service times at the pickup
	// and dropoff.
	LoadMinutes   = 60.0
	UnloadMinutes = 60.0
)

// NeedsBreak reports whether a contiguous driving span requires a 30-minute
// break before more driving.
func NeedsBreak(contiguousDrivingHours float64) bool {
	return contiguousDrivingHours >= BreakAfterDrivingHours
}

// BreaksRequired returns the number of 30-minute breaks a trip with the given
// total driving hours must include: one per full 8-hour span.
func BreaksRequired(totalDrivingHours float64) int {
	if totalDrivingHours < BreakAfterDrivingHours {
		return 0
	}
	return int(totalDrivingHours / BreakAfterDrivingHours)
}

// NeedsExtendedRest reports whether the trip's total on-duty time exceeds the
// duty window remaining after cycleHoursUsed, requiring a 10-hour rest.
func NeedsExtendedRest(totalTripHours, cycleHoursUsed float64) bool {
	return totalTripHours > DutyWindowHours-cycleHoursUsed
}
