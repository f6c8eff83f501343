package models

import "time"

// CRSProperties names the coordinate reference system of a location.
type CRSProperties struct {
	Name string `json:"name"`
}

// CRS is the coordinate reference system block the API attaches to each
// location. FloodNet positions are WGS 84 (EPSG:4326).
type CRS struct {
	Type       string        `json:"type"`
	Properties CRSProperties `json:"properties"`
}

// Location is the GeoJSON point attached to a deployment record.
// Coordinates are in [longitude, latitude] order.
type Location struct {
	Type        string    `json:"type"`
	CRS         CRS       `json:"crs"`
	Coordinates []float64 `json:"coordinates"`
}

// Deployment represents a single flood-depth sensor installation.
// Records are immutable once parsed; a cache refresh replaces the whole
// collection rather than updating individual deployments.
type Deployment struct {
	DeploymentID string
	Name         string
	DateDeployed time.Time
	DateDown     *time.Time // nil while the sensor is still in the ground
	DeployType   string
	SensorMount  string
	MountedOver  string
	SensorStatus string
	Image        string
	Location     Location

	// Flattened from Location.Coordinates during parsing.
	Longitude float64
	Latitude  float64
}

// Active reports whether the deployment has not been taken down.
func (d *Deployment) Active() bool {
	return d.DateDown == nil
}
