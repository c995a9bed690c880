package report

import (
	"training-expiry-dashboard/internal/training"
)

const (
	chartTitle   = "Dias Restantes por Colaborador e Treinamento"
	personAxis   = "Colaborador"
	trainingAxis = "Treinamento"
	daysAxis     = "Dias Restantes"
)

// Chart is a Plotly figure: a grouped bar chart with one trace per training.
type Chart struct {
	Data   []BarTrace  `json:"data"`
	Layout ChartLayout `json:"layout"`
}

// BarTrace holds the bars of one training. CustomData carries
// [base date, due date, status] for the hover label.
type BarTrace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	LegendGroup   string      `json:"legendgroup"`
	OffsetGroup   string      `json:"offsetgroup"`
	X             []string    `json:"x"`
	Y             []*int      `json:"y"`
	CustomData    [][3]string `json:"customdata"`
	HoverTemplate string      `json:"hovertemplate"`
}

type ChartLayout struct {
	Title   ChartText `json:"title"`
	BarMode string    `json:"barmode"`
	XAxis   ChartAxis `json:"xaxis"`
	YAxis   ChartAxis `json:"yaxis"`
	Legend  ChartAxis `json:"legend"`
}

type ChartAxis struct {
	Title ChartText `json:"title"`
}

type ChartText struct {
	Text string `json:"text"`
}

// BuildChart groups records by training in first-appearance order. Records
// without remaining days keep their slot with a null bar.
func BuildChart(records []training.Record) Chart {
	traces := []BarTrace{}
	byTraining := map[string]int{}
	for _, record := range records {
		idx, ok := byTraining[record.Training]
		if !ok {
			idx = len(traces)
			byTraining[record.Training] = idx
			traces = append(traces, BarTrace{
				Type:          "bar",
				Name:          record.Training,
				LegendGroup:   record.Training,
				OffsetGroup:   record.Training,
				X:             []string{},
				Y:             []*int{},
				CustomData:    [][3]string{},
				HoverTemplate: hoverTemplate(record.Training),
			})
		}
		trace := &traces[idx]
		trace.X = append(trace.X, record.Person)
		trace.Y = append(trace.Y, record.RemainingDays)
		trace.CustomData = append(trace.CustomData, [3]string{
			formatDate(record.BaseDate),
			formatDate(record.DueDate),
			record.Status.Label(),
		})
	}
	return Chart{
		Data: traces,
		Layout: ChartLayout{
			Title:   ChartText{Text: chartTitle},
			BarMode: "group",
			XAxis:   ChartAxis{Title: ChartText{Text: personAxis}},
			YAxis:   ChartAxis{Title: ChartText{Text: daysAxis}},
			Legend:  ChartAxis{Title: ChartText{Text: trainingAxis}},
		},
	}
}

func hoverTemplate(name string) string {
	return trainingAxis + "=" + name +
		"<br>" + personAxis + "=%{x}" +
		"<br>" + daysAxis + "=%{y}" +
		"<br>Data=%{customdata[0]}" +
		"<br>Data Vencimento=%{customdata[1]}" +
		"<br>Status=%{customdata[2]}<extra></extra>"
}
