package geo

// Segment is a line segment between two points in the XZ plane.
type Segment struct {
	From Point2D `json:"from"`
	To   Point2D `json:"to"`
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.From.Distance(s.To)
}

// ClosestPoint returns the point on the segment closest to pt. The
// projection is clamped to the segment ends, not the infinite line.
func (s Segment) ClosestPoint(pt Point2D) Point2D {
	d := s.To.Sub(s.From)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		// Degenerate segment.
		return s.From
	}
	t := pt.Sub(s.From).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.From.Add(d.Scale(t))
}

// DistanceTo returns the minimum distance from pt to the segment.
func (s Segment) DistanceTo(pt Point2D) float64 {
	return pt.Distance(s.ClosestPoint(pt))
}
