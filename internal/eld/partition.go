// Package eld partitions a trip's segment chain into per-calendar-day
// duty-status logs, the record an electronic logging device would produce.
// Partitioning is pure and deterministic: the same trip and segments always
// yield byte-identical logs (modulo storage-assigned identifiers).
package eld

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

// Identity carries the driver/carrier/vehicle fields stamped onto every
// generated DailyLog, plus the odometer reading at trip start.
type Identity struct {
	DriverName    string
	CarrierName   string
	TruckNumber   string
	TrailerNumber string
	OdometerBase  int
}

// dutyStatusBySegmentType is the exhaustive segment-type → duty-status table.
// Breaks are off duty; the extended rest counts as sleeper berth.
var dutyStatusBySegmentType = map[domain.SegmentType]domain.DutyStatus{
	domain.SegmentDrive:  domain.StatusDriving,
	domain.SegmentLoad:   domain.StatusOnDuty,
	domain.SegmentUnload: domain.StatusOnDuty,
	domain.SegmentBreak:  domain.StatusOffDuty,
	domain.SegmentRest:   domain.StatusSleeper,
}

// DutyStatusFor returns the duty status recorded for a segment type.
// Unrecognized types default to off duty.
func DutyStatusFor(t domain.SegmentType) domain.DutyStatus {
	if s, ok := dutyStatusBySegmentType[t]; ok {
		return s
	}
	return domain.StatusOffDuty
}

// remarkFor is the human-readable remark stamped on a segment-derived entry.
func remarkFor(t domain.SegmentType) string {
	switch t {
	case domain.SegmentDrive:
		return "Drive segment"
	case domain.SegmentLoad:
		return "Loading at pickup"
	case domain.SegmentUnload:
		return "Unloading at dropoff"
	case domain.SegmentBreak:
		return "30-minute break"
	case domain.SegmentRest:
		return "10-hour rest"
	default:
		return string(t) + " segment"
	}
}

const offDutyRemark = "Off duty"

// Partition produces one DailyLog per calendar day of the trip's
// [start date, end date] range. Each log's entries are the day-clipped
// overlapping segments, padded with OFF entries so the day tiles a full
// 24 hours; a day with no overlapping segment gets a single whole-day OFF
// entry. Entry locations use the unclipped segment's start address — the
// text names where the activity began, not the clipped sub-window.
//
// Returns domain.ErrNoSegments when segments is empty.
func Partition(trip domain.Trip, segments []domain.Segment, id Identity) ([]domain.DailyLog, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("eld.Partition: %w", domain.ErrNoSegments)
	}

	ordered := make([]domain.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	startDate := midnightUTC(trip.StartTime)
	endDate := midnightUTC(trip.EndTime)

	odometer := float64(id.OdometerBase)
	var logs []domain.DailyLog

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		dayStart := day
		dayEnd := day.AddDate(0, 0, 1)

		var entries []domain.LogEntry
		var dayMiles float64

		for _, seg := range ordered {
			if !seg.StartTime.Before(dayEnd) || !seg.EndTime.After(dayStart) {
				continue
			}

			entryStart := maxTime(seg.StartTime, dayStart)
			entryEnd := minTime(seg.EndTime, dayEnd)
			entries = append(entries, domain.LogEntry{
				Status:    DutyStatusFor(seg.Type),
				StartTime: entryStart,
				EndTime:   entryEnd,
				Location:  seg.StartLocation.Address,
				Remarks:   remarkFor(seg.Type),
			})

			if seg.Type == domain.SegmentDrive && seg.EndTime.After(seg.StartTime) {
				// Pro-rate the segment's distance by the share of its
				// duration that falls inside this day.
				share := entryEnd.Sub(entryStart).Seconds() / seg.EndTime.Sub(seg.StartTime).Seconds()
				dayMiles += seg.DistanceMiles * share
			}
		}

		entries = padOffDuty(entries, dayStart, dayEnd, trip.CurrentLocation.Address)

		logs = append(logs, domain.DailyLog{
			TripID:        trip.ID,
			Date:          day,
			DriverName:    id.DriverName,
			CarrierName:   id.CarrierName,
			TruckNumber:   id.TruckNumber,
			TrailerNumber: id.TrailerNumber,
			StartOdometer: int(math.Round(odometer)),
			EndOdometer:   int(math.Round(odometer + dayMiles)),
			TotalMiles:    dayMiles,
			Entries:       entries,
		})
		odometer += dayMiles
	}

	return logs, nil
}

// padOffDuty fills every uncovered interval of [dayStart, dayEnd) with an OFF
// entry so the returned entries tile the full day. An empty input produces a
// single whole-day OFF entry.
func padOffDuty(entries []domain.LogEntry, dayStart, dayEnd time.Time, location string) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(entries)*2+1)
	cursor := dayStart

	off := func(from, to time.Time) domain.LogEntry {
		return domain.LogEntry{
			Status:    domain.StatusOffDuty,
			StartTime: from,
			EndTime:   to,
			Location:  location,
			Remarks:   offDutyRemark,
		}
	}

	for _, e := range entries {
		if e.StartTime.After(cursor) {
			out = append(out, off(cursor, e.StartTime))
		}
		out = append(out, e)
		cursor = e.EndTime
	}
	if cursor.Before(dayEnd) {
		out = append(out, off(cursor, dayEnd))
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
