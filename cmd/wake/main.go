// Command wake analyses a biologging tag recording: it segments dives,
// classifies behaviour, estimates foraging success and energetic cost,
// persists the results, and can serve them over a JSON API with debug
// charts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/GilRaitses/wake-sub000/internal/api"
	"github.com/GilRaitses/wake-sub000/internal/config"
	"github.com/GilRaitses/wake-sub000/internal/db"
	"github.com/GilRaitses/wake-sub000/internal/dive"
	"github.com/GilRaitses/wake-sub000/internal/monitor"
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
	"github.com/GilRaitses/wake-sub000/internal/units"
	"github.com/GilRaitses/wake-sub000/internal/version"
)

var (
	input         = flag.String("input", "", "Path to a deployment recording (JSON)")
	dbFile        = flag.String("db", "wake.db", "Path to the sqlite database")
	configPath    = flag.String("config", "", "Path to an analysis config JSON (defaults apply if empty)")
	listen        = flag.String("listen", "", "Listen address for the results API (empty: analyse and exit)")
	depthUnits    = flag.String("units", units.Metres, "Depth units for API output (m, ft)")
	plotDir       = flag.String("plot", "", "Directory for a depth-profile PNG (empty: no plot)")
	migrationsDir = flag.String("migrations", "migrations", "Path to the schema migrations directory")
	strict        = flag.Bool("strict-channels", true, "Reject recordings with missing acceleration/acoustic channels instead of zero-filling")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("wake %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *input == "" {
		log.Fatal("An input recording is required (-input)")
	}
	if !units.IsValid(*depthUnits) {
		log.Fatalf("Invalid units %q (valid: %s)", *depthUnits, units.GetValidUnitsString())
	}

	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysisConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	pipeline, err := dive.NewPipeline(cfg)
	if err != nil {
		log.Fatalf("Invalid analysis configuration: %v", err)
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	rec, err := telemetry.LoadDeploymentRecord(*input)
	if err != nil {
		log.Fatalf("Failed to load recording: %v", err)
	}

	policy := telemetry.Reject
	if !*strict {
		policy = telemetry.ZeroFill
	}
	frame, err := telemetry.Normalize(rec, telemetry.NormalizeOptions{
		AccelerationPolicy: policy,
		AcousticPolicy:     policy,
	})
	if err != nil {
		log.Fatalf("Bad input recording: %v", err)
	}

	log.Printf("Loaded %s: %d samples at %.1f Hz (%.0f s)",
		rec.TagID, frame.Len(), frame.SampleRate, frame.Duration())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report, err := pipeline.Run(ctx, rec.TagID, frame)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	log.Printf("Detected %d dives, %d surface periods",
		len(report.Dives), report.Surface.SurfacePeriods)
	for _, insight := range report.Insights {
		log.Printf("  %s", insight)
	}

	dep := db.Deployment{
		ID:             uuid.NewString(),
		TagID:          rec.TagID,
		SourceFile:     *input,
		SamplingRateHz: frame.SampleRate,
		SampleCount:    int64(frame.Len()),
		DurationS:      frame.Duration(),
	}
	if err := database.SaveReport(ctx, dep, report); err != nil {
		log.Fatalf("Failed to persist report: %v", err)
	}
	log.Printf("Saved deployment %s", dep.ID)

	if *plotDir != "" {
		windows := dive.Segment(frame, cfg.GetDepthThresholdM(), cfg.GetMinDiveDurationS())
		path, err := monitor.SaveDepthProfilePNG(*plotDir, rec.TagID, frame, windows)
		if err != nil {
			log.Printf("Failed to write depth profile plot: %v", err)
		} else {
			log.Printf("Wrote depth profile: %s", path)
		}
	}

	if *listen == "" {
		return
	}

	server := api.NewServer(database, *depthUnits)
	mux := server.ServeMux()
	monitor.NewWebServer(frame, report).Attach(mux)

	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("Serving results on %s", *listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Print("Shutting down")
	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
}
