// Package training turns raw spreadsheet rows into training records with a
// due date, a signed remaining-day count and a status bucket, all computed
// against the run date.
package training

import "time"

// DueSoonWindowDays is the inclusive upper bound of the DueSoon bucket.
const DueSoonWindowDays = 30

// Status buckets a record by its remaining days.
type Status int

const (
	StatusUndefined Status = iota
	StatusOverdue
	StatusDueSoon
	StatusOnTrack
)

var statusLabels = map[Status]string{
	StatusUndefined: "Indefinido",
	StatusOverdue:   "Vencido",
	StatusDueSoon:   "A vencer",
	StatusOnTrack:   "Dentro do prazo",
}

// Label is the pt-BR text shown in the dashboard.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusUndefined]
}

func (s Status) String() string {
	switch s {
	case StatusOverdue:
		return "overdue"
	case StatusDueSoon:
		return "due_soon"
	case StatusOnTrack:
		return "on_track"
	default:
		return "undefined"
	}
}

// Record is one spreadsheet row. Pointer fields are nil when absent.
type Record struct {
	Row      int
	Person   string
	Training string

	BaseDate   *time.Time
	OffsetDays *int

	DueDate       *time.Time
	RemainingDays *int
	Status        Status
}

// Summary holds the dashboard counters. Undefined rows are counted only in
// Undefined and Total.
type Summary struct {
	Total     int
	Overdue   int
	DueSoon   int
	OnTrack   int
	Undefined int
}

// Defined is the number of rows that landed in one of the three counters.
func (s Summary) Defined() int {
	return s.Overdue + s.DueSoon + s.OnTrack
}
