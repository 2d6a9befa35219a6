// Package placement implements the legality checks for putting a
// building at a candidate point: world bounds, parcel containment and
// zoning, road clearance, and overlap against existing buildings.
//
// Every function here is pure. Validate runs on every pointer-move to
// drive live cursor feedback, so the checks are ordered cheapest-first
// and short-circuit on the first failure.
package placement

import (
	"math"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

// Fixed-vocabulary rejection reasons. These are the engine's contract
// with the UI layer; no other reason strings are produced.
const (
	ReasonOutsideBounds  = "Outside buildable area"
	ReasonOutsideParcels = "Outside parcels"
	ReasonZoning         = "Zoning does not allow this building type"
	ReasonOnRoad         = "On road"
	ReasonOverlap        = "Overlaps existing building"
)

// Obstacle is a read-only snapshot entry for an existing building:
// its ground position and conservative collision radius.
type Obstacle struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
}

// ObstacleOf derives the snapshot entry for an existing instance.
func ObstacleOf(b building.Instance) Obstacle {
	return Obstacle{X: b.Position.X, Z: b.Position.Z, Radius: b.Footprint.CollisionRadius()}
}

// Config is the read-only environment a candidate is validated against.
type Config struct {
	Parcels    []site.Parcel
	Roads      []site.Road
	Obstacles  []Obstacle
	RoadBuffer float64
	WorldBound float64
}

// ConfigFromSite builds a validation config from the static site config
// plus a snapshot of existing buildings.
func ConfigFromSite(cfg *site.Config, obstacles []Obstacle) Config {
	return Config{
		Parcels:    cfg.Parcels,
		Roads:      cfg.Roads,
		Obstacles:  obstacles,
		RoadBuffer: cfg.RoadBuffer,
		WorldBound: cfg.WorldBound,
	}
}

// Result is the outcome of a validation. Reason is set only on failure;
// ParcelID identifies the containing parcel when one exists.
type Result struct {
	OK       bool   `json:"ok"`
	Reason   string `json:"reason,omitempty"`
	ParcelID string `json:"parcel_id,omitempty"`
}

// IsEligible is the cheap pre-filter run on every pointer-move frame:
// the point must sit within the symmetric world bound on both axes.
// A non-positive bound falls back to the site default.
func IsEligible(pt geo.Point2D, bound float64) bool {
	if bound <= 0 {
		bound = site.DefaultWorldBound
	}
	return math.Abs(pt.X) <= bound && math.Abs(pt.Z) <= bound
}

// Validate runs the authoritative legality check for placing a building
// of the given type and footprint at pt. Checks run in order and stop at
// the first failure: bounds, parcel containment, zoning, road clearance,
// obstacle overlap.
func Validate(pt geo.Point2D, fp building.Footprint, t building.Type, cfg Config) Result {
	if !IsEligible(pt, cfg.WorldBound) {
		return Result{Reason: ReasonOutsideBounds}
	}

	// Parcel containment and zoning. An empty parcel list means the
	// whole bounded site is buildable.
	var parcelID string
	if len(cfg.Parcels) > 0 {
		containing := containingParcel(pt, cfg.Parcels)
		if containing == nil {
			return Result{Reason: ReasonOutsideParcels}
		}
		if !containing.Allows(t) {
			return Result{Reason: ReasonZoning}
		}
		parcelID = containing.ID
	}

	// Road clearance: one violating segment is enough to reject.
	for _, road := range cfg.Roads {
		for _, seg := range road.Segments {
			clearance := seg.EffectiveWidth(road)/2 + cfg.RoadBuffer
			if seg.Centerline().DistanceTo(pt) < clearance {
				return Result{Reason: ReasonOnRoad}
			}
		}
	}

	// Overlap: circle-vs-circle against every existing obstacle.
	radius := fp.CollisionRadius()
	for _, ob := range cfg.Obstacles {
		if pt.Distance(geo.Pt(ob.X, ob.Z)) < radius+ob.Radius {
			return Result{Reason: ReasonOverlap}
		}
	}

	return Result{OK: true, ParcelID: parcelID}
}

// containingParcel returns the first parcel whose boundary contains pt,
// or nil when none does.
func containingParcel(pt geo.Point2D, parcels []site.Parcel) *site.Parcel {
	for i := range parcels {
		if parcels[i].BoundaryPolygon().Contains(pt) {
			return &parcels[i]
		}
	}
	return nil
}
