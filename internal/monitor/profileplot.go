package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/GilRaitses/wake-sub000/internal/dive"
	"github.com/GilRaitses/wake-sub000/internal/security"
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// SaveDepthProfilePNG writes a static depth-profile plot for the recording
// to outputDir, overlaying the detected dive windows. Returns the written
// file path.
func SaveDepthProfilePNG(outputDir, tagID string, frame *telemetry.SensorFrame, windows []dive.Window) (string, error) {
	if frame.Len() == 0 {
		return "", fmt.Errorf("empty frame, nothing to plot")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Depth profile — %s", tagID)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "depth (m)"
	p.Add(plotter.NewGrid())

	trace := make(plotter.XYs, frame.Len())
	for i := range trace {
		trace[i].X = frame.Timestamps[i]
		// Negated so deeper plots lower, matching dive-profile convention.
		trace[i].Y = -frame.Depth[i]
	}

	line, err := plotter.NewLine(trace)
	if err != nil {
		return "", fmt.Errorf("failed to build depth line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)
	p.Legend.Add("depth", line)

	// Mark each dive's deepest point.
	if len(windows) > 0 {
		peaks := make(plotter.XYs, 0, len(windows))
		for _, w := range windows {
			peakIdx := w.Start
			for i := w.Start; i < w.End; i++ {
				if frame.Depth[i] > frame.Depth[peakIdx] {
					peakIdx = i
				}
			}
			peaks = append(peaks, plotter.XY{
				X: frame.Timestamps[peakIdx],
				Y: -frame.Depth[peakIdx],
			})
		}
		scatter, err := plotter.NewScatter(peaks)
		if err != nil {
			return "", fmt.Errorf("failed to build dive markers: %w", err)
		}
		scatter.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
		p.Add(scatter)
		p.Legend.Add("dive max depth", scatter)
	}

	outPath := filepath.Join(outputDir, fmt.Sprintf("%s_profile.png", security.SanitizeFilename(tagID)))
	if err := p.Save(10*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return "", fmt.Errorf("failed to save plot: %w", err)
	}
	return outPath, nil
}
