// Package building defines the building catalog: the fixed set of
// placeable building types, their preset dimensions, and the instance
// record the engine proposes on a successful placement.
package building

import (
	"fmt"

	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/google/uuid"
)

// Type enumerates the placeable building variants.
type Type int

const (
	Detached Type = iota
	Townhouse
	Midrise
)

// AllTypes lists every type in fixed enumeration order. The order is
// load-bearing for mix distribution tie-breaking.
var AllTypes = []Type{Detached, Townhouse, Midrise}

// String returns the lowercase name used in configs and JSON.
func (t Type) String() string {
	switch t {
	case Detached:
		return "detached"
	case Townhouse:
		return "townhouse"
	case Midrise:
		return "midrise"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseType resolves a config/JSON name to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "detached":
		return Detached, nil
	case "townhouse":
		return Townhouse, nil
	case "midrise":
		return Midrise, nil
	}
	return 0, fmt.Errorf("unknown building type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Preset holds the fixed dimensions of a building type in meters.
type Preset struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// presets is the associated-constant table for each type. The collision
// radius is tracked separately (see footprintRadius): it is a deliberately
// conservative circular bound, not derived from width/depth.
var presets = map[Type]Preset{
	Detached:  {Width: 10, Depth: 8, Height: 6},
	Townhouse: {Width: 12, Depth: 9, Height: 10},
	Midrise:   {Width: 18, Depth: 14, Height: 22},
}

// footprintRadius is the fixed circular bound per type used for fast
// overlap tests, in meters.
var footprintRadius = map[Type]float64{
	Detached:  7,
	Townhouse: 7,
	Midrise:   11,
}

// PresetFor returns the preset dimensions for a type.
func PresetFor(t Type) Preset {
	return presets[t]
}

// FootprintRadius returns the fixed collision radius for a type.
func FootprintRadius(t Type) float64 {
	return footprintRadius[t]
}

// MinSpacing returns the minimum safe center-to-center spacing for a
// type: twice its collision radius.
func MinSpacing(t Type) float64 {
	return 2 * footprintRadius[t]
}

// Footprint is the axis-aligned bounding extent of a building, used for
// snap alignment and overlap tests. If Radius is set it overrides the
// max(width,depth)/2 derivation.
type Footprint struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Radius float64 `json:"radius,omitempty"`
}

// FootprintFor returns the footprint of a type's preset.
func FootprintFor(t Type) Footprint {
	p := presets[t]
	return Footprint{Width: p.Width, Depth: p.Depth, Radius: footprintRadius[t]}
}

// CollisionRadius returns the circular bound used for overlap tests:
// the direct radius when supplied, otherwise max(width,depth)/2.
func (f Footprint) CollisionRadius() float64 {
	if f.Radius > 0 {
		return f.Radius
	}
	if f.Width > f.Depth {
		return f.Width / 2
	}
	return f.Depth / 2
}

// Instance is a placed (or proposed) building. The engine creates
// instances; after commit they are owned and mutated exclusively by the
// external registry.
type Instance struct {
	ID        string      `json:"id"`
	Position  geo.Point3D `json:"position"`
	RotationY float64     `json:"rotation_y"` // radians
	Type      Type        `json:"type"`
	Footprint Footprint   `json:"footprint"`
}

// NewInstance creates an instance of the given type at pos with a fresh ID
// and the type's preset footprint.
func NewInstance(t Type, pos geo.Point3D) Instance {
	return Instance{
		ID:        uuid.NewString(),
		Position:  pos,
		Type:      t,
		Footprint: FootprintFor(t),
	}
}

// Height returns the vertical extent of the instance's type preset.
func (b Instance) Height() float64 {
	return presets[b.Type].Height
}
