package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"training-expiry-dashboard/internal/training"
)

// PrintSummary writes the run overview shown after a successful build.
func PrintSummary(w io.Writer, doc Document, source string) {
	summary := doc.Summary
	red := color.New(color.FgRed, color.Bold)
	amber := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w, doc.Title)
	fmt.Fprintln(w, strings.Repeat("=", 38))
	fmt.Fprintf(w, "Entrada: %s\n", source)
	fmt.Fprintf(w, "Atualizado em: %s\n", doc.GeneratedOn)
	fmt.Fprintf(w, "Registros: %d\n", summary.Total)
	red.Fprintf(w, "Vencidos: %d", summary.Overdue)
	fmt.Fprint(w, " | ")
	amber.Fprintf(w, "A vencer (<=%dd): %d", training.DueSoonWindowDays, summary.DueSoon)
	fmt.Fprint(w, " | ")
	green.Fprintf(w, "Dentro do prazo: %d", summary.OnTrack)
	fmt.Fprintln(w)
	if summary.Undefined > 0 {
		fmt.Fprintf(w, "Indefinidos (data ou prazo ausente): %d\n", summary.Undefined)
	}
}
