// Package report renders the training dashboard: counters, a Plotly bar
// chart and the detail table in one static HTML page.
package report

import (
	"html/template"
	"strings"
	"time"

	"github.com/pkg/errors"

	"training-expiry-dashboard/internal/training"
)

// PlotlyCDN is the script the page loads the chart library from.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

const pageTitle = "Dashboard de Treinamentos"

// Document is everything the page template needs.
type Document struct {
	Title       string
	GeneratedOn string
	RunID       string
	PlotlyURL   string
	Summary     training.Summary
	Chart       Chart
	Columns     []string
	Rows        []Row
}

// NewDocument builds the page model for records already derived against
// runDate.
func NewDocument(records []training.Record, summary training.Summary, runDate time.Time, runID string) Document {
	return Document{
		Title:       pageTitle,
		GeneratedOn: runDate.Format("2006-01-02"),
		RunID:       runID,
		PlotlyURL:   PlotlyCDN,
		Summary:     summary,
		Chart:       BuildChart(records),
		Columns:     TableColumns,
		Rows:        TableRows(records),
	}
}

var pageTemplate = template.Must(template.New("dashboard").Parse(htmlTemplate))

// RenderHTML executes the page template. Chart data is JSON-encoded by
// html/template inside the script block.
func RenderHTML(doc Document) (string, error) {
	var builder strings.Builder
	if err := pageTemplate.Execute(&builder, doc); err != nil {
		return "", errors.Wrap(err, "render dashboard")
	}
	return builder.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  {{- if .RunID}}
  <meta name="generator-run" content="{{.RunID}}"/>
  {{- end}}
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; }
    h1 { margin-bottom: 0; }
    .subtitle { color: #555; margin-top: 4px; }
    .kpis { display: flex; gap: 12px; margin: 16px 0; flex-wrap: wrap; }
    .kpi { padding: 12px 16px; border-radius: 8px; color: #fff; font-weight: bold; min-width: 180px; }
    .kpi span { font-size: 24px; display: block; margin-top: 4px; }
    .kpi-red { background: #d84a4a; }
    .kpi-amber { background: #e0a800; }
    .kpi-green { background: #2e7d32; }
    .chart { width: 100%; min-height: 480px; }
    .data-table { border-collapse: collapse; width: 100%; margin-top: 20px; }
    .data-table th, .data-table td { border: 1px solid #ddd; padding: 8px; }
    .data-table th { background: #f5f5f5; text-align: left; }
    .data-table td.num { text-align: right; }
    .status-overdue { color: #d84a4a; font-weight: bold; }
    .status-due_soon { color: #b38600; font-weight: bold; }
    .status-on_track { color: #2e7d32; }
    .status-undefined { color: #888; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="subtitle">Atualizado em {{.GeneratedOn}}</div>
  <div class="kpis">
    <div class="kpi kpi-red">Vencidos<br><span id="kpi-overdue">{{.Summary.Overdue}}</span></div>
    <div class="kpi kpi-amber">A vencer (&le;30d)<br><span id="kpi-due-soon">{{.Summary.DueSoon}}</span></div>
    <div class="kpi kpi-green">Dentro do prazo<br><span id="kpi-on-track">{{.Summary.OnTrack}}</span></div>
  </div>
  <div id="chart" class="chart"></div>
  <script src="{{.PlotlyURL}}" charset="utf-8"></script>
  <script>
    (function () {
      var figure = {{.Chart}};
      Plotly.newPlot("chart", figure.data, figure.layout, {responsive: true});
    })();
  </script>
  <h2>Detalhamento</h2>
  <table class="data-table">
    <thead>
      <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      <tr>
        <td>{{.Person}}</td>
        <td>{{.Training}}</td>
        <td>{{.BaseDate}}</td>
        <td>{{.DueDate}}</td>
        <td class="num">{{.RemainingDays}}</td>
        <td class="{{.StatusClass}}">{{.Status}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</body>
</html>
`
