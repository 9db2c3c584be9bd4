package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/GilRaitses/wake-sub000/internal/db"
	"github.com/GilRaitses/wake-sub000/internal/dive"
	"github.com/GilRaitses/wake-sub000/internal/units"
)

func newTestServer(t *testing.T, depthUnits string) *Server {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	report := &dive.Report{
		TagID: "test-tag",
		Dives: []dive.Record{
			{
				DiveID:     1,
				StartTime:  30,
				EndTime:    145,
				Duration:   115,
				Kinematics: dive.Kinematics{MaxDepth: 40, DescentRate: 2.0, AscentRate: 2.0},
				Behavior:   dive.DeepForaging,
				Context:    dive.SuccessfulForaging,
				Foraging:   dive.ForagingIndicators{SuccessProbability: 0.8},
				EnergyCost: 22.5,
			},
		},
		Surface: dive.SurfaceSummary{TotalSurfaceTime: 120, SurfacePeriods: 3},
		Model: dive.EnergeticModel{
			TotalEnergyCost:  22.5,
			BehavioralBudget: map[string]float64{"deep_foraging": 1.0},
			P98Depth:         40,
		},
		Insights: []string{"Recorded 1 dives."},
	}
	dep := db.Deployment{ID: "dep-001", TagID: "test-tag", SamplingRateHz: 1.0}
	if err := database.SaveReport(context.Background(), dep, report); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	return NewServer(database, depthUnits)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

func TestListDeployments(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/deployments")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var deps []db.Deployment
	if err := json.Unmarshal(rec.Body.Bytes(), &deps); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(deps) != 1 || deps[0].ID != "dep-001" {
		t.Errorf("deployments = %+v, want one dep-001", deps)
	}
}

func TestShowDives(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/dives?deployment=dep-001")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var records []dive.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].MaxDepth != 40 {
		t.Errorf("MaxDepth = %v, want 40", records[0].MaxDepth)
	}
	if records[0].Behavior != dive.DeepForaging {
		t.Errorf("Behavior = %v, want deep_foraging", records[0].Behavior)
	}
}

func TestShowDives_FeetConversion(t *testing.T) {
	s := newTestServer(t, units.Feet)

	rec := doRequest(t, s, "/api/dives?deployment=dep-001")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var records []dive.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got, want := records[0].MaxDepth, 40*3.28084; math.Abs(got-want) > 1e-6 {
		t.Errorf("MaxDepth = %v ft, want %v", got, want)
	}
	if got, want := records[0].DescentRate, 2.0*3.28084; math.Abs(got-want) > 1e-6 {
		t.Errorf("DescentRate = %v ft/s, want %v", got, want)
	}
}

func TestShowDives_MissingParam(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/dives")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestShowDives_UnknownDeploymentIsEmptyList(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/dives?deployment=no-such")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (empty list, not error)", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON list", got)
	}
}

func TestShowModel(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/model?deployment=dep-001")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		dive.EnergeticModel
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalEnergyCost != 22.5 {
		t.Errorf("TotalEnergyCost = %v, want 22.5", resp.TotalEnergyCost)
	}
	if len(resp.Insights) != 1 {
		t.Errorf("insights = %v, want 1 entry", resp.Insights)
	}
}

func TestShowModel_NotFound(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/model?deployment=no-such")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestShowSurface(t *testing.T) {
	s := newTestServer(t, units.Metres)

	rec := doRequest(t, s, "/api/surface?deployment=dep-001")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary dive.SurfaceSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if summary.SurfacePeriods != 3 {
		t.Errorf("SurfacePeriods = %d, want 3", summary.SurfacePeriods)
	}
}

func TestShowRollup(t *testing.T) {
	s := newTestServer(t, units.Feet)

	rec := doRequest(t, s, "/api/rollup?deployment=dep-001")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats []db.BehaviorStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(stats) != 1 || stats[0].Behavior != "deep_foraging" {
		t.Fatalf("rollup = %+v, want one deep_foraging row", stats)
	}
	if got, want := stats[0].MaxDepth, 40*3.28084; math.Abs(got-want) > 1e-6 {
		t.Errorf("MaxDepth = %v ft, want %v", got, want)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, units.Metres)

	req := httptest.NewRequest(http.MethodPost, "/api/deployments", nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
