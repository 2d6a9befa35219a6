package validation

import (
	"testing"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

func TestReportAccumulation(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Fatal("new report should be valid")
	}

	r.AddWarning(Result{Level: LevelSchema, Message: "w"})
	if !r.Valid {
		t.Error("warnings should not invalidate")
	}

	r.AddError(Result{Level: LevelSchema, Message: "e"})
	if r.Valid {
		t.Error("errors should invalidate")
	}
	if r.Summary != "1 errors, 1 warnings, 0 info" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.AddInfo(Result{Message: "i"})

	b := NewReport()
	b.AddError(Result{Message: "e"})

	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid report should invalidate")
	}
	if len(a.Errors) != 1 || len(a.Info) != 1 {
		t.Errorf("merged: %d errors, %d info", len(a.Errors), len(a.Info))
	}
}

func validSite() *site.Config {
	return &site.Config{
		Name:       "ok",
		WorldBound: 200,
		RoadBuffer: 2,
		Parcels: []site.Parcel{{
			ID:       "p1",
			Boundary: [][2]float64{{-50, -50}, {50, -50}, {50, 50}, {-50, 50}},
		}},
		Roads: []site.Road{{
			Name:     "main",
			Width:    8,
			Segments: []site.RoadSegment{{From: [2]float64{-50, 0}, To: [2]float64{50, 0}}},
		}},
	}
}

func TestValidateConfigOK(t *testing.T) {
	r := ValidateConfig(validSite())
	if !r.Valid {
		t.Fatalf("valid config rejected: %s", r.Summary)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	cfg := validSite()
	cfg.WorldBound = -1
	cfg.RoadBuffer = -2
	cfg.Parcels = append(cfg.Parcels, site.Parcel{ID: "p1", Boundary: [][2]float64{{0, 0}, {1, 0}, {1, 1}}})
	cfg.Parcels = append(cfg.Parcels, site.Parcel{ID: "tiny", Boundary: [][2]float64{{0, 0}, {1, 0}}})
	cfg.Roads[0].Width = 0

	r := ValidateConfig(cfg)
	if r.Valid {
		t.Fatal("expected invalid")
	}
	// negative bound, negative buffer, duplicate parcel id, short
	// boundary, zero road width.
	if len(r.Errors) != 5 {
		t.Fatalf("got %d errors (%s), want 5", len(r.Errors), r.Summary)
	}
}

func TestValidateConfigOpenWorldInfo(t *testing.T) {
	cfg := &site.Config{Name: "open", WorldBound: 200}
	r := ValidateConfig(cfg)
	if !r.Valid {
		t.Fatalf("open world config rejected: %s", r.Summary)
	}
	if len(r.Info) == 0 {
		t.Error("expected open-world info note")
	}
}

func TestValidateConfigZoningTypesKnown(t *testing.T) {
	cfg := validSite()
	cfg.Parcels[0].AllowedTypes = []building.Type{building.Midrise}
	if r := ValidateConfig(cfg); !r.Valid {
		t.Fatalf("restricted parcel rejected: %s", r.Summary)
	}
}
