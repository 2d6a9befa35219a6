package placement

import (
	"math"
	"testing"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
)

func detachedAt(x, y, z float64) building.Instance {
	b := building.NewInstance(building.Detached, geo.Pt3(x, y, z))
	return b
}

func TestSnapNoNeighbors(t *testing.T) {
	fp := building.FootprintFor(building.Detached)
	res := ComputeSnap(geo.Pt3(3.4, 0.02, -7.6), fp, nil)
	if res.Snapped {
		t.Error("no neighbors: should not report snapped")
	}
	// Falls back to whole-meter rounding per axis.
	if res.X != 3 || res.Z != -8 {
		t.Errorf("got (%f, %f), want (3, -8)", res.X, res.Z)
	}
	if res.Y != 0.02 {
		t.Errorf("y = %f, want raw y preserved", res.Y)
	}
}

func TestSnapEdgeToEdge(t *testing.T) {
	// Existing detached at origin: width 10. New detached width 10.
	// Right edge-to-edge X candidate = 0 + 5 + 5 = 10.
	existing := []building.Instance{detachedAt(0, 0, 0)}
	fp := building.FootprintFor(building.Detached)

	res := ComputeSnap(geo.Pt3(12, 0.02, 20), fp, existing)
	if !res.Snapped {
		t.Fatal("expected snap on X")
	}
	if res.X != 10 {
		t.Errorf("x = %f, want 10 (edge-to-edge)", res.X)
	}
	// Z is far from every candidate: rounds.
	if res.Z != 20 {
		t.Errorf("z = %f, want 20", res.Z)
	}
}

func TestSnapCenterAlignment(t *testing.T) {
	existing := []building.Instance{detachedAt(0, 0, 0)}
	fp := building.FootprintFor(building.Detached)

	// x=1 is closest to the center candidate (0); z=30 is out of range.
	res := ComputeSnap(geo.Pt3(1, 0.02, 30), fp, existing)
	if !res.Snapped || res.X != 0 {
		t.Fatalf("got %+v, want center-aligned x=0", res)
	}
}

func TestSnapClosestCandidateWins(t *testing.T) {
	// Two buildings with X candidates at different distances; the
	// strictly closer one wins.
	existing := []building.Instance{
		detachedAt(0, 0, 100),  // right edge candidate at 10
		detachedAt(23, 0, 100), // left edge candidate at 13
	}
	fp := building.FootprintFor(building.Detached)

	res := ComputeSnap(geo.Pt3(12, 0.02, 0), fp, existing)
	if res.X != 13 {
		t.Errorf("x = %f, want 13 (closest candidate)", res.X)
	}
}

func TestSnapBothAxes(t *testing.T) {
	// Detached at origin: depth 8. Back edge-to-edge Z = 0 + 4 + 4 = 8.
	existing := []building.Instance{detachedAt(0, 0, 0)}
	fp := building.FootprintFor(building.Detached)

	res := ComputeSnap(geo.Pt3(9, 0.02, 7), fp, existing)
	if res.X != 10 || res.Z != 8 {
		t.Errorf("got (%f, %f), want (10, 8)", res.X, res.Z)
	}
}

func TestSnapStacking(t *testing.T) {
	// Pointer inside the existing building's core: stacks on top.
	existing := []building.Instance{detachedAt(0, 0, 0)}
	fp := building.FootprintFor(building.Detached)

	res := ComputeSnap(geo.Pt3(2, 0.02, 1), fp, existing)
	if !res.Snapped {
		t.Fatal("stacking should report snapped")
	}
	if res.X != 0 || res.Z != 0 {
		t.Errorf("stacked at (%f, %f), want existing center (0, 0)", res.X, res.Z)
	}
	wantY := building.PresetFor(building.Detached).Height
	if math.Abs(res.Y-wantY) > 1e-9 {
		t.Errorf("y = %f, want %f (existing y + height)", res.Y, wantY)
	}
}

func TestSnapStackingPrecedence(t *testing.T) {
	// Within stacking range of one building and snap range of another:
	// stacking wins.
	near := detachedAt(0, 0, 0)
	aligned := detachedAt(14, 0, 0)
	fp := building.FootprintFor(building.Detached)

	res := ComputeSnap(geo.Pt3(3, 0.02, 0), fp, []building.Instance{near, aligned})
	if res.X != 0 || res.Z != 0 {
		t.Errorf("got (%f, %f), want stack at (0, 0)", res.X, res.Z)
	}
	if res.Y <= 0 {
		t.Errorf("y = %f, want elevated", res.Y)
	}
}

func TestSnapOutOfRange(t *testing.T) {
	existing := []building.Instance{detachedAt(0, 0, 0)}
	fp := building.FootprintFor(building.Detached)

	// 5.0 away from the nearest candidate (10): threshold is exclusive.
	res := ComputeSnap(geo.Pt3(15.0, 0.02, 50), fp, existing)
	if res.Snapped {
		t.Errorf("distance exactly at threshold should not snap, got %+v", res)
	}
}
