package models

import "time"

// DepthReading is one timestamped water-depth measurement from a deployment.
type DepthReading struct {
	DeploymentID string
	Time         time.Time
	DepthMM      float64 // processed depth in millimeters, never negative
}
