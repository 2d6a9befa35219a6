package building

import (
	"testing"

	"github.com/EVAnunit1307/citysync/pkg/geo"
)

func TestTypeRoundTrip(t *testing.T) {
	for _, bt := range AllTypes {
		parsed, err := ParseType(bt.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", bt.String(), err)
		}
		if parsed != bt {
			t.Errorf("ParseType(%q) = %v, want %v", bt.String(), parsed, bt)
		}
	}
	if _, err := ParseType("castle"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestFootprintRadii(t *testing.T) {
	cases := []struct {
		bt   Type
		want float64
	}{
		{Detached, 7},
		{Townhouse, 7},
		{Midrise, 11},
	}
	for _, c := range cases {
		if got := FootprintRadius(c.bt); got != c.want {
			t.Errorf("FootprintRadius(%v) = %f, want %f", c.bt, got, c.want)
		}
		if got := MinSpacing(c.bt); got != 2*c.want {
			t.Errorf("MinSpacing(%v) = %f, want %f", c.bt, got, 2*c.want)
		}
	}
}

func TestCollisionRadius(t *testing.T) {
	// Direct radius overrides dimensions.
	f := Footprint{Width: 20, Depth: 4, Radius: 3}
	if got := f.CollisionRadius(); got != 3 {
		t.Errorf("CollisionRadius = %f, want 3", got)
	}
	// Otherwise max(width, depth)/2.
	f = Footprint{Width: 6, Depth: 14}
	if got := f.CollisionRadius(); got != 7 {
		t.Errorf("CollisionRadius = %f, want 7", got)
	}
}

func TestNewInstance(t *testing.T) {
	b := NewInstance(Midrise, geo.Pt3(5, 0.02, -3))
	if b.ID == "" {
		t.Error("instance should get an ID")
	}
	if b.Footprint.Radius != 11 {
		t.Errorf("footprint radius = %f, want 11", b.Footprint.Radius)
	}
	if b.Height() != presets[Midrise].Height {
		t.Errorf("height = %f, want preset height", b.Height())
	}

	b2 := NewInstance(Midrise, geo.Pt3(5, 0.02, -3))
	if b.ID == b2.ID {
		t.Error("instances should get unique IDs")
	}
}
