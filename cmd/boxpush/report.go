package main

import (
	"fmt"
	"io"
	"text/template"

	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/internal/game"
)

// Report is the outcome of a replay.
type Report struct {
	Level         string
	Width, Height int

	Keys     int
	Rejected int
	Status   game.Status
	Recorded bool
	Sprites  int

	Storage   *ecs.StorageStats
	Scheduler *ecs.SchedulerStats
}

const reportTemplate = `
# Replay Report: {{.Level}}

## Level
- **Board:** {{.Width}}x{{.Height}}
- **Entities:** {{.Storage.TotalEntityCount}}
- **Sprites drawn:** {{.Sprites}}

## Outcome
- **State:** {{.Status.State}}
- **Keys:** {{.Keys}} ({{.Status.Moves}} moves, {{.Rejected}} rejected)
- **Ticks:** {{.Status.Ticks}}
{{- if eq .Status.State.String "solved"}}
- **Solved at:** {{seconds .Status.SolvedAt}}
{{- end}}
{{- if .Recorded}}
- **Recorded:** yes
{{- end}}

## Component Tables
{{- range .Storage.TableBreakdown}}
- {{.ComponentType}}: {{.ComponentCount}}
{{- end}}

## Systems ({{.Scheduler.SystemCount}})
{{- range .Scheduler.Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"seconds": func(s float64) string {
		return fmt.Sprintf("%.2fs", s)
	},
}).Parse(reportTemplate))

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
