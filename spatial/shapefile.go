package spatial

import (
	"fmt"

	"github.com/jonas-p/go-shp"
)

// LoadBoundary reads every polygon record from a shapefile and returns them
// as one MultiPolygon. Coordinates must already be longitude/latitude
// (WGS 84); no reprojection is attempted. Non-polygon records are ignored.
func LoadBoundary(path string) (MultiPolygon, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer reader.Close()

	var boundary MultiPolygon
	for reader.Next() {
		_, s := reader.Shape()
		poly, ok := s.(*shp.Polygon)
		if !ok {
			continue
		}
		boundary = append(boundary, polygonsFromShape(poly)...)
	}

	if len(boundary) == 0 {
		return nil, fmt.Errorf("no polygon records in %s", path)
	}
	return boundary, nil
}

// polygonsFromShape splits a shapefile polygon record into polygons per the
// ring convention: clockwise rings open a new outer boundary,
// counter-clockwise rings are holes in the preceding one.
func polygonsFromShape(p *shp.Polygon) []Polygon {
	var polys []Polygon
	numParts := int(p.NumParts)
	for i := 0; i < numParts; i++ {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < numParts {
			end = int(p.Parts[i+1])
		}

		ring := make([]Point, 0, end-start)
		for _, sp := range p.Points[start:end] {
			ring = append(ring, Point{Lon: sp.X, Lat: sp.Y})
		}
		if len(ring) < 3 {
			continue
		}

		if signedArea(ring) < 0 || len(polys) == 0 {
			polys = append(polys, Polygon{rings: [][]Point{ring}})
		} else {
			last := &polys[len(polys)-1]
			last.rings = append(last.rings, ring)
		}
	}
	return polys
}
