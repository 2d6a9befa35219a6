// Package site holds the static site configuration supplied at startup:
// buildable parcels, roads, and world bounds. The engine reads it, never
// mutates it.
package site

import (
	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
)

// Defaults applied by Load when the config leaves them zero.
const (
	DefaultWorldBound = 200.0 // meters, symmetric around the origin
	DefaultRoadBuffer = 2.0   // meters of clearance beyond a road's half-width
)

// Config is the top-level site configuration.
type Config struct {
	Name       string   `yaml:"name" json:"name"`
	WorldBound float64  `yaml:"world_bound" json:"world_bound"`
	RoadBuffer float64  `yaml:"road_buffer" json:"road_buffer"`
	Parcels    []Parcel `yaml:"parcels" json:"parcels"`
	Roads      []Road   `yaml:"roads" json:"roads"`
}

// Parcel is a polygonal zone of buildable land, optionally restricted to
// certain building types. An empty AllowedTypes list allows all types.
type Parcel struct {
	ID           string          `yaml:"id" json:"id"`
	Boundary     [][2]float64    `yaml:"boundary" json:"boundary"` // [x, z] vertices in order
	AllowedTypes []building.Type `yaml:"allowed_types,omitempty" json:"allowed_types,omitempty"`
}

// BoundaryPolygon returns the parcel boundary as a geo.Polygon.
func (p Parcel) BoundaryPolygon() geo.Polygon {
	pts := make([]geo.Point2D, len(p.Boundary))
	for i, b := range p.Boundary {
		pts[i] = geo.Pt(b[0], b[1])
	}
	return geo.NewPolygon(pts...)
}

// Allows reports whether the parcel's zoning permits the given type.
func (p Parcel) Allows(t building.Type) bool {
	if len(p.AllowedTypes) == 0 {
		return true
	}
	for _, at := range p.AllowedTypes {
		if at == t {
			return true
		}
	}
	return false
}

// Road is a named group of segments sharing a default width.
type Road struct {
	Name     string        `yaml:"name" json:"name"`
	Width    float64       `yaml:"width" json:"width"`
	Segments []RoadSegment `yaml:"segments" json:"segments"`
}

// RoadSegment is one piece of a road's centerline. A zero Width inherits
// the road's default.
type RoadSegment struct {
	From  [2]float64 `yaml:"from" json:"from"`
	To    [2]float64 `yaml:"to" json:"to"`
	Width float64    `yaml:"width,omitempty" json:"width,omitempty"`
}

// Centerline returns the segment as a geo.Segment.
func (s RoadSegment) Centerline() geo.Segment {
	return geo.Segment{From: geo.Pt(s.From[0], s.From[1]), To: geo.Pt(s.To[0], s.To[1])}
}

// EffectiveWidth returns the segment width, falling back to the road default.
func (s RoadSegment) EffectiveWidth(road Road) float64 {
	if s.Width > 0 {
		return s.Width
	}
	return road.Width
}
