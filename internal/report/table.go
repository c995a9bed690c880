package report

import (
	"sort"
	"strconv"
	"time"

	"training-expiry-dashboard/internal/training"
)

// TableColumns are the detail table headers, in order.
var TableColumns = []string{"Colaborador", "Treinamento", "Data", "Data Vencimento", "Dias Restantes", "Status"}

// Row is one detail table line, already formatted. Absent values are "".
type Row struct {
	Person        string
	Training      string
	BaseDate      string
	DueDate       string
	RemainingDays string
	Status        string
	StatusClass   string
}

// SortRecords orders by status label, then remaining days ascending with
// absent values last. Ties keep input order.
func SortRecords(records []training.Record) []training.Record {
	sorted := append([]training.Record{}, records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := sorted[i], sorted[j]
		if li, ri := left.Status.Label(), right.Status.Label(); li != ri {
			return li < ri
		}
		switch {
		case left.RemainingDays == nil:
			return false
		case right.RemainingDays == nil:
			return true
		default:
			return *left.RemainingDays < *right.RemainingDays
		}
	})
	return sorted
}

// TableRows sorts records and formats them for the detail table.
func TableRows(records []training.Record) []Row {
	sorted := SortRecords(records)
	rows := make([]Row, 0, len(sorted))
	for _, record := range sorted {
		rows = append(rows, Row{
			Person:        record.Person,
			Training:      record.Training,
			BaseDate:      formatDate(record.BaseDate),
			DueDate:       formatDate(record.DueDate),
			RemainingDays: formatDays(record.RemainingDays),
			Status:        record.Status.Label(),
			StatusClass:   "status-" + record.Status.String(),
		})
	}
	return rows
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}

func formatDays(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
