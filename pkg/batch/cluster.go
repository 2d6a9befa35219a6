package batch

import (
	"fmt"
	"math"
	"strings"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/placement"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

// Config describes one subdivision batch. It is consumed by a single
// generate-and-commit cycle and then discarded.
type Config struct {
	TotalBuildings int     `yaml:"total_buildings" json:"total_buildings"`
	Spacing        float64 `yaml:"spacing" json:"spacing"`
	FootprintScale float64 `yaml:"footprint_scale" json:"footprint_scale"`
	Mix            Mix     `yaml:"mix" json:"mix"`
}

const (
	// maxYawJitter is the amplitude of the cosmetic rotation applied to
	// generated buildings, about 4 degrees. It has no effect on
	// collision or validation.
	maxYawJitter = 4 * math.Pi / 180

	// minProbeAttempts floors the collision-probe cap so tiny batches
	// on crowded grids still get a fair scan.
	minProbeAttempts = 64
)

// GenerateCluster lays out a batch as a near-square grid centered on
// origin. The per-type counts come from Distribute; buildings of one
// type are emitted before the next. Grid cells are probed in order and
// a cell that would overlap an already-placed circle in this batch is
// skipped, so the output never overlaps itself. The probe scan is
// capped; an item that cannot find a free cell within the cap is
// dropped rather than looping forever. Positions clamp to worldBound
// before the overlap check, so edge cells that clamp onto an already
// claimed spot are treated as occupied and probing continues.
//
// The output is a proposal: callers validate each instance against
// parcels, roads, and pre-existing buildings before committing.
func GenerateCluster(origin geo.Point2D, cfg Config, worldBound float64) []building.Instance {
	if cfg.TotalBuildings <= 0 {
		return []building.Instance{}
	}
	if worldBound <= 0 {
		worldBound = site.DefaultWorldBound
	}

	counts := Distribute(cfg.TotalBuildings, cfg.Mix)

	// Flat ordered type list, all of one type before the next.
	types := make([]building.Type, 0, cfg.TotalBuildings)
	for _, t := range building.AllTypes {
		for i := 0; i < counts.ByType(t); i++ {
			types = append(types, t)
		}
	}

	// The grid step never drops below the largest minimum safe spacing
	// of any type present in the batch.
	step := cfg.Spacing * cfg.FootprintScale
	for _, t := range building.AllTypes {
		if counts.ByType(t) > 0 && building.MinSpacing(t) > step {
			step = building.MinSpacing(t)
		}
	}

	total := len(types)
	cols := int(math.Ceil(math.Sqrt(float64(total))))
	rows := int(math.Ceil(float64(total) / float64(cols)))

	maxProbes := 16 * total
	if maxProbes < minProbeAttempts {
		maxProbes = minProbeAttempts
	}

	type placed struct {
		pt     geo.Point2D
		radius float64
	}
	var claimed []placed

	out := make([]building.Instance, 0, total)
	cell := 0
	for _, t := range types {
		radius := building.FootprintRadius(t)

		pt, ok := probeCell(origin, cell, cols, rows, step, radius, worldBound, maxProbes, func(pt geo.Point2D, r float64) bool {
			for _, p := range claimed {
				if pt.Distance(p.pt) < r+p.radius {
					return true
				}
			}
			return false
		}, &cell)
		if !ok {
			// Probe cap exceeded: drop the item, fail closed.
			continue
		}

		claimed = append(claimed, placed{pt: pt, radius: radius})

		b := building.NewInstance(t, geo.Pt3(pt.X, geo.GroundY+geo.GroundOffsetY, pt.Z))
		b.RotationY = yawJitter(pt)
		out = append(out, b)
	}
	return out
}

// probeCell walks grid cells from the running cell index until one is
// free of overlap or the attempt budget runs out. Candidates are
// clamped to the world bound first, so the overlap check sees the
// position the building will actually occupy. The consumed cell index
// is written back so later items skip claimed cells.
func probeCell(origin geo.Point2D, start, cols, rows int, step, radius, bound float64, budget int,
	overlaps func(geo.Point2D, float64) bool, cellOut *int) (geo.Point2D, bool) {

	cell := start
	for attempt := 0; attempt < budget; attempt++ {
		pt := clampToBound(cellPosition(origin, cell, cols, rows, step), bound)
		if !overlaps(pt, radius) {
			*cellOut = cell + 1
			return pt, true
		}
		cell++
	}
	*cellOut = cell
	return geo.Point2D{}, false
}

// cellPosition maps a cell index to its world position on the grid
// centered at origin.
func cellPosition(origin geo.Point2D, cell, cols, rows int, step float64) geo.Point2D {
	row := cell / cols
	col := cell % cols
	x := origin.X + (float64(col)-float64(cols-1)/2)*step
	z := origin.Z + (float64(row)-float64(rows-1)/2)*step
	return geo.Pt(x, z)
}

func clampToBound(pt geo.Point2D, bound float64) geo.Point2D {
	pt.X = math.Max(-bound, math.Min(bound, pt.X))
	pt.Z = math.Max(-bound, math.Min(bound, pt.Z))
	return pt
}

// yawJitter derives a small cosmetic rotation from the position so
// generation stays deterministic.
func yawJitter(pt geo.Point2D) float64 {
	return maxYawJitter * math.Sin(pt.X*0.73+pt.Z*0.37)
}

// Summary reports the outcome of committing a batch: how many proposals
// survived validation and why the rest were blocked.
type Summary struct {
	Placed  int            `json:"placed"`
	Total   int            `json:"total"`
	Blocked map[string]int `json:"blocked,omitempty"` // category -> count
}

// blockedCategory folds validation reasons into the short categories
// surfaced to the user.
func blockedCategory(reason string) string {
	switch reason {
	case placement.ReasonOutsideParcels, placement.ReasonZoning:
		return "parcels"
	case placement.ReasonOnRoad:
		return "roads"
	case placement.ReasonOverlap:
		return "overlap"
	case placement.ReasonOutsideBounds:
		return "bounds"
	}
	return "other"
}

// categoryOrder fixes the display order of blocked categories.
var categoryOrder = []string{"parcels", "roads", "overlap", "bounds", "other"}

// String renders the summary as the one-line message shown to the user.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d placed", s.Placed, s.Total)
	blocked := s.Total - s.Placed
	if blocked <= 0 {
		return b.String()
	}
	fmt.Fprintf(&b, " (%d blocked:", blocked)
	for _, cat := range categoryOrder {
		if n := s.Blocked[cat]; n > 0 {
			fmt.Fprintf(&b, " %s=%d", cat, n)
		}
	}
	b.WriteString(")")
	return b.String()
}

// FilterValid runs the placement validator over every proposal against
// the pre-existing world (parcels, roads, committed buildings; not the
// other proposals, which GenerateCluster already deduplicated) and
// returns the surviving instances with a summary.
func FilterValid(proposals []building.Instance, cfg placement.Config) ([]building.Instance, Summary) {
	sum := Summary{Total: len(proposals), Blocked: map[string]int{}}
	kept := make([]building.Instance, 0, len(proposals))
	for _, b := range proposals {
		res := placement.Validate(b.Position.XZ(), b.Footprint, b.Type, cfg)
		if !res.OK {
			sum.Blocked[blockedCategory(res.Reason)]++
			continue
		}
		kept = append(kept, b)
	}
	sum.Placed = len(kept)
	return kept, sum
}
