package spatial

import "testing"

func TestBoundingBox_Contains(t *testing.T) {
	box := NewBoundingBox(-74.1, 40.6, -73.9, 40.8)

	tests := []struct {
		name     string
		lon, lat float64
		want     bool
	}{
		{"inside", -74.0, 40.7, true},
		{"outside east", -73.0, 41.0, false},
		{"on west edge", -74.1, 40.7, true},
		{"on south edge", -74.0, 40.6, true},
		{"on corner", -74.1, 40.6, true},
		{"just outside north", -74.0, 40.8001, false},
	}
	for _, tt := range tests {
		if got := box.Contains(tt.lon, tt.lat); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.lon, tt.lat, got, tt.want)
		}
	}
}

func TestNewBoundingBox_NormalizesCorners(t *testing.T) {
	box := NewBoundingBox(-73.9, 40.8, -74.1, 40.6)
	if box.MinLon != -74.1 || box.MaxLon != -73.9 {
		t.Errorf("longitudes not normalized: %+v", box)
	}
	if box.MinLat != 40.6 || box.MaxLat != 40.8 {
		t.Errorf("latitudes not normalized: %+v", box)
	}
}

func TestPolygon_Contains(t *testing.T) {
	square := NewPolygon([]Point{
		{Lon: 0, Lat: 0},
		{Lon: 10, Lat: 0},
		{Lon: 10, Lat: 10},
		{Lon: 0, Lat: 10},
	})

	tests := []struct {
		name     string
		lon, lat float64
		want     bool
	}{
		{"inside", 5, 5, true},
		{"outside", 15, 5, false},
		{"on edge", 5, 0, true},
		{"on vertex", 0, 0, true},
		{"on right edge", 10, 5, true},
		{"just below edge", 5, -0.001, false},
	}
	for _, tt := range tests {
		if got := square.Contains(tt.lon, tt.lat); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.lon, tt.lat, got, tt.want)
		}
	}
}

func TestPolygon_Hole(t *testing.T) {
	donut := NewPolygon(
		[]Point{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 10, Lat: 10}, {Lon: 0, Lat: 10}},
		[]Point{{Lon: 4, Lat: 4}, {Lon: 6, Lat: 4}, {Lon: 6, Lat: 6}, {Lon: 4, Lat: 6}},
	)

	if donut.Contains(5, 5) {
		t.Error("Contains(5, 5) = true inside the hole")
	}
	if !donut.Contains(2, 2) {
		t.Error("Contains(2, 2) = false in the ring body")
	}
	// Hole boundaries still count as inside: containment is closed.
	if !donut.Contains(4, 5) {
		t.Error("Contains(4, 5) = false on the hole boundary")
	}
}

func TestPolygon_Degenerate(t *testing.T) {
	line := NewPolygon([]Point{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 10}})
	if line.Contains(5, 5) {
		t.Error("a two-point ring must contain nothing")
	}
	empty := Polygon{}
	if empty.Contains(0, 0) {
		t.Error("the zero polygon must contain nothing")
	}
}

func TestMultiPolygon_Contains(t *testing.T) {
	m := MultiPolygon{
		NewPolygon([]Point{{Lon: 0, Lat: 0}, {Lon: 2, Lat: 0}, {Lon: 2, Lat: 2}, {Lon: 0, Lat: 2}}),
		NewPolygon([]Point{{Lon: 10, Lat: 10}, {Lon: 12, Lat: 10}, {Lon: 12, Lat: 12}, {Lon: 10, Lat: 12}}),
	}

	if !m.Contains(1, 1) {
		t.Error("Contains(1, 1) = false, point is in the first polygon")
	}
	if !m.Contains(11, 11) {
		t.Error("Contains(11, 11) = false, point is in the second polygon")
	}
	if m.Contains(5, 5) {
		t.Error("Contains(5, 5) = true, point is in neither polygon")
	}
}

func TestSignedArea_Orientation(t *testing.T) {
	ccw := []Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 1}}
	if signedArea(ccw) <= 0 {
		t.Errorf("signedArea(ccw) = %v, want > 0", signedArea(ccw))
	}
	cw := []Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}}
	if signedArea(cw) >= 0 {
		t.Errorf("signedArea(cw) = %v, want < 0", signedArea(cw))
	}
}
