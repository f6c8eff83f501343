// Package spatial adds geometric filtering on top of the core FloodNet
// client: point-in-geometry tests against deployment positions, boundary
// loading from shapefiles, and depth queries restricted to a region.
package spatial

import "math"

// Point is a geographic coordinate in longitude/latitude order, matching
// GeoJSON and shapefile conventions.
type Point struct {
	Lon float64
	Lat float64
}

// Geometry is any region that can answer a closed containment test. Points
// exactly on the boundary are inside.
type Geometry interface {
	Contains(lon, lat float64) bool
}

// BoundingBox is an axis-aligned longitude/latitude rectangle.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// NewBoundingBox builds a box from two corners in either order.
func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) BoundingBox {
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	return BoundingBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}
}

// Contains reports whether the point is inside or on the edge of the box.
func (b BoundingBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Polygon is an outer ring with optional holes. Rings need not repeat their
// first vertex; the closing edge is implied.
type Polygon struct {
	rings [][]Point
}

// NewPolygon builds a polygon from an outer ring and zero or more holes.
func NewPolygon(outer []Point, holes ...[]Point) Polygon {
	rings := make([][]Point, 0, 1+len(holes))
	rings = append(rings, outer)
	rings = append(rings, holes...)
	return Polygon{rings: rings}
}

// Contains reports whether the point is inside the polygon. Points on any
// ring boundary, including hole boundaries, count as inside.
func (p Polygon) Contains(lon, lat float64) bool {
	if len(p.rings) == 0 || len(p.rings[0]) < 3 {
		return false
	}
	for _, ring := range p.rings {
		if onRing(ring, lon, lat) {
			return true
		}
	}
	if !inRing(p.rings[0], lon, lat) {
		return false
	}
	for _, hole := range p.rings[1:] {
		if inRing(hole, lon, lat) {
			return false
		}
	}
	return true
}

// MultiPolygon contains a point if any member polygon does.
type MultiPolygon []Polygon

// Contains reports whether any member polygon contains the point.
func (m MultiPolygon) Contains(lon, lat float64) bool {
	for _, p := range m {
		if p.Contains(lon, lat) {
			return true
		}
	}
	return false
}

// inRing is the standard ray-casting test: a horizontal ray from the point
// crosses the ring's edges an odd number of times when the point is inside.
func inRing(ring []Point, lon, lat float64) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lon < (pj.Lon-pi.Lon)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
	}
	return inside
}

// onRing reports whether the point lies on one of the ring's segments.
func onRing(ring []Point, lon, lat float64) bool {
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		if onSegment(ring[j], ring[i], lon, lat) {
			return true
		}
	}
	return false
}

func onSegment(a, b Point, lon, lat float64) bool {
	const eps = 1e-12
	cross := (b.Lon-a.Lon)*(lat-a.Lat) - (b.Lat-a.Lat)*(lon-a.Lon)
	if math.Abs(cross) > eps {
		return false
	}
	if lon < math.Min(a.Lon, b.Lon)-eps || lon > math.Max(a.Lon, b.Lon)+eps {
		return false
	}
	if lat < math.Min(a.Lat, b.Lat)-eps || lat > math.Max(a.Lat, b.Lat)+eps {
		return false
	}
	return true
}

// signedArea is the shoelace area of a ring: negative for clockwise rings.
func signedArea(ring []Point) float64 {
	area := 0.0
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		area += (ring[j].Lon * ring[i].Lat) - (ring[i].Lon * ring[j].Lat)
	}
	return area / 2
}
