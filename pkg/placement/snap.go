package placement

import (
	"math"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
)

// SnapThreshold is the maximum distance, per axis, at which a new
// building is pulled into alignment with an existing one.
const SnapThreshold = 5.0

// SnapResult is an adjusted placement position. Snapped reports whether
// any alignment (or stacking) took effect; a pure grid-rounding fallback
// does not count.
type SnapResult struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Snapped bool    `json:"snapped"`
}

// ComputeSnap aligns a candidate single placement to nearby existing
// buildings. Per axis it considers edge-to-edge and center-to-center
// alignment against every existing building and keeps the closest
// candidate within SnapThreshold; ties resolve to the earlier match
// (a later candidate wins only when strictly closer). Dropping the
// pointer near-enough to an existing building's center stacks on top of
// it instead, which takes precedence over horizontal alignment. Axes
// with no candidate in range round to the nearest whole meter.
func ComputeSnap(raw geo.Point3D, fp building.Footprint, existing []building.Instance) SnapResult {
	newW, newD := fp.Width, fp.Depth

	bestX, bestZ := math.MaxFloat64, math.MaxFloat64
	snapX, snapZ := 0.0, 0.0
	snappedX, snappedZ := false, false

	for _, b := range existing {
		w, d := b.Footprint.Width, b.Footprint.Depth

		// Stacking: pointer is over the building's core footprint.
		half := math.Max(w, d) / 2
		if raw.XZ().Distance(b.Position.XZ()) < half {
			return SnapResult{
				X:       b.Position.X,
				Y:       b.Position.Y + b.Height(),
				Z:       b.Position.Z,
				Snapped: true,
			}
		}

		xCandidates := []float64{
			b.Position.X - w/2 - newW/2, // left edge-to-edge
			b.Position.X + w/2 + newW/2, // right edge-to-edge
			b.Position.X,                // center alignment
		}
		for _, c := range xCandidates {
			if dist := math.Abs(raw.X - c); dist < SnapThreshold && dist < bestX {
				bestX = dist
				snapX = c
				snappedX = true
			}
		}

		zCandidates := []float64{
			b.Position.Z - d/2 - newD/2, // front edge-to-edge
			b.Position.Z + d/2 + newD/2, // back edge-to-edge
			b.Position.Z,                // center alignment
		}
		for _, c := range zCandidates {
			if dist := math.Abs(raw.Z - c); dist < SnapThreshold && dist < bestZ {
				bestZ = dist
				snapZ = c
				snappedZ = true
			}
		}
	}

	out := SnapResult{X: raw.X, Y: raw.Y, Z: raw.Z, Snapped: snappedX || snappedZ}
	if snappedX {
		out.X = snapX
	} else {
		out.X = math.Round(raw.X)
	}
	if snappedZ {
		out.Z = snapZ
	} else {
		out.Z = math.Round(raw.Z)
	}
	return out
}
