package ui

import (
	"github.com/floodnet-nyc/floodnet-go/models"
)

// Message types for async operations

// deploymentsLoadedMsg is sent when the deployment listing has been fetched
type deploymentsLoadedMsg struct {
	deployments []models.Deployment
	err         error
}

// readingsLoadedMsg is sent when depth readings for one deployment have been fetched
type readingsLoadedMsg struct {
	deploymentID string
	readings     []models.DepthReading
	err          error
}
