package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"training-expiry-dashboard/internal/training"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func sampleRecords() []training.Record {
	base := timePtr(day(2024, 1, 1))
	records := []training.Record{
		{Row: 1, Person: "Ana", Training: "NR-10", BaseDate: base, OffsetDays: intPtr(40)},
		{Row: 2, Person: "Bruno", Training: "NR-35", BaseDate: base, OffsetDays: intPtr(400)},
		{Row: 3, Person: "Carla", Training: "NR-10", BaseDate: base},
		{Row: 4, Person: "Davi", Training: "NR-10", BaseDate: base, OffsetDays: intPtr(10)},
		{Row: 5, Person: "<Eva>", Training: "NR-35", BaseDate: base, OffsetDays: intPtr(60)},
		{Row: 6, Person: "Ana", Training: "NR-35", BaseDate: base, OffsetDays: intPtr(50)},
	}
	return training.Derive(records, day(2024, 1, 20))
}

func TestBuildChartGroupsByTraining(t *testing.T) {
	chart := BuildChart(sampleRecords())

	require.Len(t, chart.Data, 2)
	nr10, nr35 := chart.Data[0], chart.Data[1]
	assert.Equal(t, "NR-10", nr10.Name)
	assert.Equal(t, []string{"Ana", "Carla", "Davi"}, nr10.X)
	require.Len(t, nr10.Y, 3)
	assert.Equal(t, 21, *nr10.Y[0])
	assert.Nil(t, nr10.Y[1])
	assert.Equal(t, -9, *nr10.Y[2])
	assert.Equal(t, [3]string{"2024-01-01", "2024-02-10", "A vencer"}, nr10.CustomData[0])
	assert.Equal(t, [3]string{"2024-01-01", "", "Indefinido"}, nr10.CustomData[1])

	assert.Equal(t, "NR-35", nr35.Name)
	assert.Equal(t, []string{"Bruno", "<Eva>", "Ana"}, nr35.X)
	assert.Equal(t, "group", chart.Layout.BarMode)

	encoded, err := json.Marshal(chart)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"y":[21,null,-9]`)
	assert.Contains(t, string(encoded), `"barmode":"group"`)
}

func TestSortRecords(t *testing.T) {
	sorted := SortRecords(sampleRecords())

	var order []string
	for _, record := range sorted {
		order = append(order, record.Person+"/"+record.Training)
	}
	// "A vencer" < "Dentro do prazo" < "Indefinido" < "Vencido"
	assert.Equal(t, []string{
		"Ana/NR-10",
		"Ana/NR-35",
		"<Eva>/NR-35",
		"Bruno/NR-35",
		"Carla/NR-10",
		"Davi/NR-10",
	}, order)
}

func TestSortRecordsAbsentLast(t *testing.T) {
	records := []training.Record{
		{Row: 1, Status: training.StatusOverdue},
		{Row: 2, Status: training.StatusOverdue, RemainingDays: intPtr(-3)},
		{Row: 3, Status: training.StatusOverdue, RemainingDays: intPtr(-8)},
		{Row: 4, Status: training.StatusOverdue, RemainingDays: intPtr(-3)},
	}
	sorted := SortRecords(records)
	rows := []int{sorted[0].Row, sorted[1].Row, sorted[2].Row, sorted[3].Row}
	assert.Equal(t, []int{3, 2, 4, 1}, rows)
	assert.Equal(t, 1, records[0].Row, "input must stay in place")
}

func TestTableRows(t *testing.T) {
	rows := TableRows(sampleRecords())
	require.Len(t, rows, 6)
	assert.Equal(t, Row{
		Person:        "Ana",
		Training:      "NR-10",
		BaseDate:      "2024-01-01",
		DueDate:       "2024-02-10",
		RemainingDays: "21",
		Status:        "A vencer",
		StatusClass:   "status-due_soon",
	}, rows[0])
	assert.Equal(t, Row{
		Person:      "Carla",
		Training:    "NR-10",
		BaseDate:    "2024-01-01",
		Status:      "Indefinido",
		StatusClass: "status-undefined",
	}, rows[4])
}

func TestRenderHTML(t *testing.T) {
	records := sampleRecords()
	summary := training.Summarize(records)
	doc := NewDocument(records, summary, day(2024, 1, 20), "run-123")

	html, err := RenderHTML(doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="pt-BR">`)
	assert.Contains(t, html, "<title>Dashboard de Treinamentos</title>")
	assert.Contains(t, html, "Atualizado em 2024-01-20")
	assert.Contains(t, html, `<meta name="generator-run" content="run-123"/>`)
	assert.Contains(t, html, `<span id="kpi-overdue">1</span>`)
	assert.Contains(t, html, `<span id="kpi-due-soon">1</span>`)
	assert.Contains(t, html, `<span id="kpi-on-track">3</span>`)
	assert.Contains(t, html, `<script src="`+PlotlyCDN+`"`)
	assert.Contains(t, html, `Plotly.newPlot("chart"`)
	assert.Contains(t, html, `"barmode":"group"`)
	assert.Contains(t, html, "<th>Data Vencimento</th>")
	assert.Contains(t, html, "<td>&lt;Eva&gt;</td>")
	assert.NotContains(t, html, "<Eva>")

	first := strings.Index(html, "<td>Ana</td>")
	last := strings.Index(html, "<td>Davi</td>")
	require.True(t, first > 0 && last > first, "table rows follow the sort order")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site", "index.html")

	require.NoError(t, WriteFile(path, "<p>um</p>"))
	require.NoError(t, WriteFile(path, "<p>dois</p>"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>dois</p>", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, WriteFile(path, "anterior"))
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	require.Error(t, WriteFile(path, "novo"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "anterior", string(data))
}

func TestPrintSummary(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	records := sampleRecords()
	doc := NewDocument(records, training.Summarize(records), day(2024, 1, 20), "")

	var buf bytes.Buffer
	PrintSummary(&buf, doc, "base_treinamentos_limpa.xlsx")

	out := buf.String()
	assert.Contains(t, out, "Entrada: base_treinamentos_limpa.xlsx")
	assert.Contains(t, out, "Registros: 6")
	assert.Contains(t, out, "Vencidos: 1 | A vencer (<=30d): 1 | Dentro do prazo: 3")
	assert.Contains(t, out, "Indefinidos (data ou prazo ausente): 1")
}
