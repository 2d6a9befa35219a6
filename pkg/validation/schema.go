package validation

import (
	"fmt"

	"github.com/EVAnunit1307/citysync/pkg/site"
)

// ValidateConfig performs schema validation on a loaded site config.
// It checks structural correctness before any placement runs against it.
func ValidateConfig(cfg *site.Config) *Report {
	r := NewReport()

	validateBounds(cfg, r)
	validateParcels(cfg, r)
	validateRoads(cfg, r)

	return r
}

func validateBounds(cfg *site.Config, r *Report) {
	if cfg.WorldBound <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "world_bound must be greater than 0",
			ConfigPath:  "world_bound",
			ActualValue: cfg.WorldBound,
			Expected:    "> 0",
		})
	}
	if cfg.RoadBuffer < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "road_buffer must be non-negative",
			ConfigPath:  "road_buffer",
			ActualValue: cfg.RoadBuffer,
			Expected:    ">= 0",
		})
	}
}

func validateParcels(cfg *site.Config, r *Report) {
	seen := map[string]bool{}
	for i, p := range cfg.Parcels {
		path := fmt.Sprintf("parcels[%d]", i)
		if p.ID == "" {
			r.AddError(Result{
				Level:      LevelSchema,
				Message:    "parcel is missing an id",
				ConfigPath: path + ".id",
			})
		} else if seen[p.ID] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate parcel id %q", p.ID),
				ConfigPath:  path + ".id",
				ActualValue: p.ID,
			})
		}
		seen[p.ID] = true

		if len(p.Boundary) < 3 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("parcel %q boundary needs at least 3 vertices", p.ID),
				ConfigPath:  path + ".boundary",
				ActualValue: len(p.Boundary),
				Expected:    ">= 3 vertices",
			})
			continue
		}
		if area := p.BoundaryPolygon().Area(); area < 1 {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("parcel %q has near-zero area (%.2f m2)", p.ID, area),
				ConfigPath:  path + ".boundary",
				ActualValue: area,
			})
		}
	}
	if len(cfg.Parcels) == 0 {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: "no parcels defined: the whole bounded site is buildable (open world)",
		})
	}
}

func validateRoads(cfg *site.Config, r *Report) {
	for i, road := range cfg.Roads {
		path := fmt.Sprintf("roads[%d]", i)
		if road.Width <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("road %q width must be greater than 0", road.Name),
				ConfigPath:  path + ".width",
				ActualValue: road.Width,
				Expected:    "> 0",
			})
		}
		if len(road.Segments) == 0 {
			r.AddWarning(Result{
				Level:      LevelSchema,
				Message:    fmt.Sprintf("road %q has no segments", road.Name),
				ConfigPath: path + ".segments",
			})
		}
		for j, seg := range road.Segments {
			if seg.Centerline().Length() < 1e-9 {
				r.AddWarning(Result{
					Level:      LevelSchema,
					Message:    fmt.Sprintf("road %q segment %d has zero length", road.Name, j),
					ConfigPath: fmt.Sprintf("%s.segments[%d]", path, j),
				})
			}
		}
	}
}
