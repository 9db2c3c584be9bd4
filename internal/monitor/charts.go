// Package monitor provides debug visualisation for analysed deployments:
// browser-rendered echarts views and PNG depth-profile export.
package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/GilRaitses/wake-sub000/internal/dive"
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// WebServer holds the most recently analysed deployment for debug
// rendering. These endpoints are debugging-only (no auth) and serve
// self-contained HTML charts.
type WebServer struct {
	frame  *telemetry.SensorFrame
	report *dive.Report
}

// NewWebServer creates a monitor for one analysed deployment.
func NewWebServer(frame *telemetry.SensorFrame, report *dive.Report) *WebServer {
	return &WebServer{frame: frame, report: report}
}

// Attach registers the debug chart routes on mux.
func (ws *WebServer) Attach(mux *http.ServeMux) {
	mux.HandleFunc("/debug/profile", ws.handleDepthProfile)
	mux.HandleFunc("/debug/budget", ws.handleBudgetChart)
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// maxProfilePoints caps the rendered depth series; longer recordings are
// downsampled by stride to keep the page light.
const maxProfilePoints = 8000

// handleDepthProfile renders the recording's depth trace as an echarts
// line, with detected dives marked at their maximum depth.
func (ws *WebServer) handleDepthProfile(w http.ResponseWriter, r *http.Request) {
	if ws.frame == nil || ws.frame.Len() == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "no deployment loaded")
		return
	}

	n := ws.frame.Len()
	stride := 1
	if n > maxProfilePoints {
		stride = (n + maxProfilePoints - 1) / maxProfilePoints
	}

	xAxis := make([]string, 0, n/stride+1)
	depths := make([]opts.LineData, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		xAxis = append(xAxis, fmt.Sprintf("%.0f", ws.frame.Timestamps[i]))
		// Negate so the plot reads like a dive profile: down is deeper.
		depths = append(depths, opts.LineData{Value: -ws.frame.Depth[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Dive Profile", Theme: "dark", Width: "1200px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dive Profile",
			Subtitle: fmt.Sprintf("tag=%s samples=%d dives=%d stride=%d", ws.report.TagID, n, len(ws.report.Dives), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "depth (m, negative down)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)"}),
	)

	line.SetXAxis(xAxis).AddSeries("depth", depths,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
	}
}

// handleBudgetChart renders the behavioural-time budget as a bar chart.
func (ws *WebServer) handleBudgetChart(w http.ResponseWriter, r *http.Request) {
	if ws.report == nil {
		ws.writeJSONError(w, http.StatusNotFound, "no deployment loaded")
		return
	}

	budget := ws.report.Model.BehavioralBudget
	labels := make([]string, 0, len(budget))
	for _, b := range dive.Behaviors {
		if _, ok := budget[b.String()]; ok {
			labels = append(labels, b.String())
		}
	}

	values := make([]opts.BarData, 0, len(labels))
	for _, label := range labels {
		values = append(values, opts.BarData{Value: budget[label]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Behavioural Budget", Theme: "dark", Width: "900px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Behavioural Budget",
			Subtitle: fmt.Sprintf("tag=%s dives=%d", ws.report.TagID, len(ws.report.Dives)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "fraction of dives"}),
	)

	bar.SetXAxis(labels).AddSeries("budget", values)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(w); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
	}
}
