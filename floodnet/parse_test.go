package floodnet

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDeployment_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"deployment_id": "bk_bridge_park_01",
		"name": "Brooklyn Bridge Park",
		"date_deployed": "2021-05-17T00:00:00",
		"date_down": null,
		"deploy_type": "street",
		"location": {
			"type": "Point",
			"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::4326"}},
			"coordinates": [-73.9969, 40.7024]
		},
		"image": null,
		"sensor_mount": "street_sign",
		"mounted_over": "sidewalk",
		"sensor_status": "good"
	}`)

	dep, err := parseDeployment(raw)
	if err != nil {
		t.Fatalf("parseDeployment() error = %v", err)
	}
	if dep.DeploymentID != "bk_bridge_park_01" {
		t.Errorf("DeploymentID = %s, want bk_bridge_park_01", dep.DeploymentID)
	}
	if dep.Name != "Brooklyn Bridge Park" {
		t.Errorf("Name = %s", dep.Name)
	}
	if dep.Longitude != -73.9969 || dep.Latitude != 40.7024 {
		t.Errorf("position = (%v, %v), want (-73.9969, 40.7024)", dep.Longitude, dep.Latitude)
	}
	if dep.Location.CRS.Properties.Name != "urn:ogc:def:crs:EPSG::4326" {
		t.Errorf("CRS = %s", dep.Location.CRS.Properties.Name)
	}
	wantDeployed := time.Date(2021, 5, 17, 0, 0, 0, 0, time.UTC)
	if !dep.DateDeployed.Equal(wantDeployed) {
		t.Errorf("DateDeployed = %v, want %v", dep.DateDeployed, wantDeployed)
	}
	if !dep.Active() {
		t.Error("Active() = false, want true for nil date_down")
	}
}

func TestParseDeployment_DateDown(t *testing.T) {
	raw := json.RawMessage(`{
		"deployment_id": "hunts_point_07",
		"date_down": "2022-02-14T00:00:00",
		"location": {"type": "Point", "coordinates": [-73.8803, 40.8126]}
	}`)

	dep, err := parseDeployment(raw)
	if err != nil {
		t.Fatalf("parseDeployment() error = %v", err)
	}
	if dep.Active() {
		t.Error("Active() = true, want false once date_down is set")
	}
	if dep.DateDown == nil || !dep.DateDown.Equal(time.Date(2022, 2, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateDown = %v, want 2022-02-14", dep.DateDown)
	}
}

func TestParseDeployment_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "missing deployment_id",
			raw:       `{"location": {"type": "Point", "coordinates": [-73.99, 40.70]}}`,
			wantField: "deployment_id",
		},
		{
			name:      "missing location",
			raw:       `{"deployment_id": "x_01"}`,
			wantField: "location",
		},
		{
			name:      "short coordinates",
			raw:       `{"deployment_id": "x_01", "location": {"type": "Point", "coordinates": [-73.99]}}`,
			wantField: "location.coordinates",
		},
		{
			name:      "bad date_deployed",
			raw:       `{"deployment_id": "x_01", "date_deployed": "yesterday", "location": {"type": "Point", "coordinates": [-73.99, 40.70]}}`,
			wantField: "date_deployed",
		},
		{
			name:      "not an object",
			raw:       `[1, 2, 3]`,
			wantField: "deployment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDeployment(json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestParseDepthReading_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"deployment_id": "gowanus_02",
		"time": "2021-09-01T06:00:00.123Z",
		"depth_proc_mm": 120.5
	}`)

	r, err := parseDepthReading(raw)
	if err != nil {
		t.Fatalf("parseDepthReading() error = %v", err)
	}
	if r.DeploymentID != "gowanus_02" {
		t.Errorf("DeploymentID = %s", r.DeploymentID)
	}
	if r.DepthMM != 120.5 {
		t.Errorf("DepthMM = %v, want 120.5", r.DepthMM)
	}
	want := time.Date(2021, 9, 1, 6, 0, 0, 123000000, time.UTC)
	if !r.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", r.Time, want)
	}
}

func TestParseDepthReading_ZeroDepthIsValid(t *testing.T) {
	raw := json.RawMessage(`{"deployment_id": "gowanus_02", "time": "2021-09-01T06:00:00Z", "depth_proc_mm": 0}`)
	r, err := parseDepthReading(raw)
	if err != nil {
		t.Fatalf("parseDepthReading() error = %v", err)
	}
	if r.DepthMM != 0 {
		t.Errorf("DepthMM = %v, want 0", r.DepthMM)
	}
}

func TestParseDepthReading_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "missing deployment_id",
			raw:       `{"time": "2021-09-01T06:00:00Z", "depth_proc_mm": 10}`,
			wantField: "deployment_id",
		},
		{
			name:      "missing time",
			raw:       `{"deployment_id": "x_01", "depth_proc_mm": 10}`,
			wantField: "time",
		},
		{
			name:      "bad time",
			raw:       `{"deployment_id": "x_01", "time": "bad-time", "depth_proc_mm": 10}`,
			wantField: "time",
		},
		{
			name:      "missing depth",
			raw:       `{"deployment_id": "x_01", "time": "2021-09-01T06:00:00Z"}`,
			wantField: "depth_proc_mm",
		},
		{
			name:      "negative depth",
			raw:       `{"deployment_id": "x_01", "time": "2021-09-01T06:00:00Z", "depth_proc_mm": -3}`,
			wantField: "depth_proc_mm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDepthReading(json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestParseDepthReadings_SkipsAndCounts(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"deployment_id": "a", "time": "2021-09-01T00:00:00Z", "depth_proc_mm": 50}`),
		json.RawMessage(`{"deployment_id": "a", "time": "bad-time", "depth_proc_mm": 30}`),
		json.RawMessage(`{"deployment_id": "a", "time": "2021-09-01T00:10:00Z", "depth_proc_mm": 12}`),
		json.RawMessage(`{"deployment_id": "a", "time": "2021-09-01T00:15:00Z", "depth_proc_mm": -1}`),
		json.RawMessage(`{"deployment_id": "a", "time": "2021-09-01T00:20:00Z", "depth_proc_mm": 8}`),
	}

	readings, skipped := parseDepthReadings(raws)
	if len(readings) != 3 {
		t.Errorf("len(readings) = %d, want 3", len(readings))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if len(readings)+skipped != len(raws) {
		t.Errorf("valid + skipped = %d, want %d", len(readings)+skipped, len(raws))
	}
}

func TestParseTimestamp_Formats(t *testing.T) {
	for _, value := range []string{
		"2021-09-01T06:00:00Z",
		"2021-09-01T06:00:00.123456Z",
		"2021-09-01T06:00:00",
		"2021-09-01 06:00:00",
	} {
		if _, err := parseTimestamp("time", value); err != nil {
			t.Errorf("parseTimestamp(%q) error = %v", value, err)
		}
	}

	_, err := parseTimestamp("time", "not-a-time")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if ve.Field != "time" {
		t.Errorf("Field = %s, want time", ve.Field)
	}
}
