package training

import "time"

// DateOnly drops the time of day and pins the calendar date to UTC, so day
// arithmetic is not skewed by DST.
func DateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween is the signed number of calendar days from -> to. It works on
// Unix seconds because time.Duration saturates after about 292 years.
func DaysBetween(from, to time.Time) int {
	return int((DateOnly(to).Unix() - DateOnly(from).Unix()) / secondsPerDay)
}

// Derive returns a copy of records with due date, remaining days and status
// recomputed relative to today. Records missing a base date or an offset
// get no derived values and the Undefined status.
func Derive(records []Record, today time.Time) []Record {
	day := DateOnly(today)
	out := make([]Record, len(records))
	for i, record := range records {
		record.DueDate = nil
		record.RemainingDays = nil
		if record.BaseDate != nil && record.OffsetDays != nil {
			due := DateOnly(*record.BaseDate).AddDate(0, 0, *record.OffsetDays)
			remaining := DaysBetween(day, due)
			record.DueDate = &due
			record.RemainingDays = &remaining
		}
		record.Status = Classify(record.RemainingDays)
		out[i] = record
	}
	return out
}

// Classify buckets remaining days. Both 0 and DueSoonWindowDays are DueSoon.
func Classify(remaining *int) Status {
	switch {
	case remaining == nil:
		return StatusUndefined
	case *remaining < 0:
		return StatusOverdue
	case *remaining <= DueSoonWindowDays:
		return StatusDueSoon
	default:
		return StatusOnTrack
	}
}

// Summarize counts records per bucket from their remaining days.
func Summarize(records []Record) Summary {
	summary := Summary{Total: len(records)}
	for _, record := range records {
		switch Classify(record.RemainingDays) {
		case StatusOverdue:
			summary.Overdue++
		case StatusDueSoon:
			summary.DueSoon++
		case StatusOnTrack:
			summary.OnTrack++
		default:
			summary.Undefined++
		}
	}
	return summary
}
