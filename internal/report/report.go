// Package report renders run summaries for the CLI.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/resilience"
)

// Renderer formats run results as a table.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes the per-source summary followed by run totals. Health
// records are read as a snapshot so a rendering run never blocks updates.
func (r *Renderer) Render(run domain.RunResult, health map[string]resilience.HealthRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{
		"Source", "Processed", "Attempted", "Success Rate", "Avg Response", "Elapsed", "Status",
	})

	for _, src := range run.Sources {
		record := health[src.Source]
		t.AppendRow(table.Row{
			src.Source,
			src.Processed,
			src.Attempted,
			fmt.Sprintf("%.0f%%", src.SuccessRate()*100),
			record.AvgResponseTime.Round(time.Millisecond),
			src.Elapsed.Round(time.Millisecond),
			status(src),
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL", run.TotalProcessed(), run.TotalAttempted(), "", "", run.Elapsed.Round(time.Millisecond), "",
	})

	t.Render()
}

// status summarizes a source's terminal condition for the table.
func status(r domain.ProcessingResult) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Degraded:
		return "degraded"
	case r.LowYield():
		return "low yield"
	default:
		return "ok"
	}
}
