package status

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/angeloszaimis/wake-web/internal/state"
)

const Title = "Wake Web Service"

// Report is a point-in-time view of the application state.
type Report struct {
	Title          string    `json:"title"`
	StartedAt      time.Time `json:"started_at"`
	Uptime         string    `json:"uptime"`
	UptimeSeconds  int64     `json:"uptime_seconds"`
	Capacity       int       `json:"capacity"`
	Lines          []string  `json:"lines"`
	RefreshSeconds int       `json:"-"`
	StartedAgo     string    `json:"-"`
}

// Reporter builds reports from the shared state.
type Reporter struct {
	state          *state.State
	refreshSeconds int
	now            func() time.Time
}

// NewReporter creates a reporter. A refreshSeconds of 0 leaves the refresh
// hint out of the HTML page.
func NewReporter(st *state.State, refreshSeconds int) *Reporter {
	return &Reporter{
		state:          st,
		refreshSeconds: refreshSeconds,
		now:            time.Now,
	}
}

// Report captures uptime and the current log lines.
func (r *Reporter) Report() Report {
	now := r.now()
	uptime := r.state.Uptime(now)

	return Report{
		Title:          Title,
		StartedAt:      r.state.StartedAt(),
		Uptime:         FormatUptime(uptime),
		UptimeSeconds:  int64(uptime / time.Second),
		Capacity:       r.state.Capacity(),
		Lines:          r.state.Lines(),
		RefreshSeconds: r.refreshSeconds,
		StartedAgo:     humanize.RelTime(r.state.StartedAt(), now, "ago", "from now"),
	}
}

// Render writes the HTML status page.
func (r *Reporter) Render(w io.Writer) error {
	return pageTemplate.Execute(w, r.Report())
}

// FormatUptime formats d as HH:MM:SS. Hours count the total elapsed hours and
// are not wrapped at 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

var pageTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Wake Web</title>
    {{- if gt .RefreshSeconds 0}}
    <meta http-equiv="refresh" content="{{.RefreshSeconds}}">
    {{- end}}
  </head>
  <body style="font-family: monospace; padding: 20px;">
    <h2>{{.Title}}</h2>
    <p>⏱️ Web running since: <code>{{.Uptime}}</code> <small>(started {{.StartedAgo}})</small></p>
    <h3>Request Log (last {{.Capacity}} entries)</h3>
    <pre style="background:#f5f5f5; padding:10px; border:1px solid #ccc; height:400px; overflow:auto;">
{{- range .Lines}}
{{.}}
{{- end}}
    </pre>
  </body>
</html>
`))
