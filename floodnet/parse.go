package floodnet

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/floodnet-nyc/floodnet-go/models"
)

// Timestamp layouts the API has been observed to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{Field: field, Reason: fmt.Sprintf("unparsable timestamp %q", value)}
}

type rawDeployment struct {
	DeploymentID string           `json:"deployment_id"`
	Name         string           `json:"name"`
	DateDeployed string           `json:"date_deployed"`
	DateDown     *string          `json:"date_down"`
	DeployType   string           `json:"deploy_type"`
	SensorMount  string           `json:"sensor_mount"`
	MountedOver  string           `json:"mounted_over"`
	SensorStatus string           `json:"sensor_status"`
	Image        *string          `json:"image"`
	Location     *models.Location `json:"location"`
}

// parseDeployment validates a single raw deployment record and flattens its
// GeoJSON coordinates into longitude/latitude fields.
func parseDeployment(raw json.RawMessage) (models.Deployment, error) {
	var rec rawDeployment
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Deployment{}, &ValidationError{Field: "deployment", Reason: err.Error()}
	}

	if rec.DeploymentID == "" {
		return models.Deployment{}, &ValidationError{Field: "deployment_id", Reason: "missing"}
	}
	if rec.Location == nil {
		return models.Deployment{}, &ValidationError{Field: "location", Reason: "missing"}
	}
	if len(rec.Location.Coordinates) != 2 {
		return models.Deployment{}, &ValidationError{Field: "location.coordinates", Reason: "expected [longitude, latitude]"}
	}

	dep := models.Deployment{
		DeploymentID: rec.DeploymentID,
		Name:         rec.Name,
		DeployType:   rec.DeployType,
		SensorMount:  rec.SensorMount,
		MountedOver:  rec.MountedOver,
		SensorStatus: rec.SensorStatus,
		Location:     *rec.Location,
		Longitude:    rec.Location.Coordinates[0],
		Latitude:     rec.Location.Coordinates[1],
	}
	if rec.Image != nil {
		dep.Image = *rec.Image
	}
	if rec.DateDeployed != "" {
		t, err := parseTimestamp("date_deployed", rec.DateDeployed)
		if err != nil {
			return models.Deployment{}, err
		}
		dep.DateDeployed = t
	}
	if rec.DateDown != nil && *rec.DateDown != "" {
		t, err := parseTimestamp("date_down", *rec.DateDown)
		if err != nil {
			return models.Deployment{}, err
		}
		dep.DateDown = &t
	}
	return dep, nil
}

type rawDepthReading struct {
	DeploymentID string   `json:"deployment_id"`
	Time         string   `json:"time"`
	DepthProcMM  *float64 `json:"depth_proc_mm"`
}

// parseDepthReading validates a single raw depth measurement.
func parseDepthReading(raw json.RawMessage) (models.DepthReading, error) {
	var rec rawDepthReading
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.DepthReading{}, &ValidationError{Field: "depth_reading", Reason: err.Error()}
	}

	if rec.DeploymentID == "" {
		return models.DepthReading{}, &ValidationError{Field: "deployment_id", Reason: "missing"}
	}
	if rec.Time == "" {
		return models.DepthReading{}, &ValidationError{Field: "time", Reason: "missing"}
	}
	t, err := parseTimestamp("time", rec.Time)
	if err != nil {
		return models.DepthReading{}, err
	}
	if rec.DepthProcMM == nil {
		return models.DepthReading{}, &ValidationError{Field: "depth_proc_mm", Reason: "missing"}
	}
	if *rec.DepthProcMM < 0 {
		return models.DepthReading{}, &ValidationError{Field: "depth_proc_mm", Reason: fmt.Sprintf("negative depth %v", *rec.DepthProcMM)}
	}

	return models.DepthReading{
		DeploymentID: rec.DeploymentID,
		Time:         t,
		DepthMM:      *rec.DepthProcMM,
	}, nil
}

// parseDeployments parses a batch of raw deployment records. Records that
// fail validation are skipped and counted; one bad record never fails the
// batch.
func parseDeployments(raws []json.RawMessage) ([]models.Deployment, int) {
	deployments := make([]models.Deployment, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		dep, err := parseDeployment(raw)
		if err != nil {
			skipped++
			continue
		}
		deployments = append(deployments, dep)
	}
	return deployments, skipped
}

// parseDepthReadings parses a batch of raw depth measurements with the same
// skip-and-count policy as parseDeployments.
func parseDepthReadings(raws []json.RawMessage) ([]models.DepthReading, int) {
	readings := make([]models.DepthReading, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		r, err := parseDepthReading(raw)
		if err != nil {
			skipped++
			continue
		}
		readings = append(readings, r)
	}
	return readings, skipped
}
