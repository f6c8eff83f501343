package spatial

import (
	"context"
	"time"

	"github.com/floodnet-nyc/floodnet-go/floodnet"
	"github.com/floodnet-nyc/floodnet-go/models"
)

// Client wraps the core FloodNet client with spatial queries. The embedded
// client's operations remain available unchanged.
type Client struct {
	*floodnet.Client
}

// NewClient wraps an existing core client.
func NewClient(core *floodnet.Client) *Client {
	return &Client{Client: core}
}

// DeploymentsWithin returns the deployments whose position satisfies the
// geometry's containment test. The deployment listing goes through the core
// client's cache. Positions exactly on the boundary are included.
func (c *Client) DeploymentsWithin(ctx context.Context, geom Geometry) ([]models.Deployment, error) {
	deployments, err := c.ListDeployments(ctx, false)
	if err != nil {
		return nil, err
	}

	within := make([]models.Deployment, 0)
	for _, d := range deployments {
		if geom.Contains(d.Longitude, d.Latitude) {
			within = append(within, d)
		}
	}
	return within, nil
}

// DepthDataWithin fetches depth readings for the deployments inside geom
// over the given time window. When no deployment falls inside the geometry
// it returns an empty set without touching the depth endpoint.
func (c *Client) DepthDataWithin(ctx context.Context, start, end time.Time, geom Geometry) ([]models.DepthReading, error) {
	if !start.Before(end) {
		return nil, &floodnet.InvalidRangeError{Start: start, End: end}
	}

	deployments, err := c.DeploymentsWithin(ctx, geom)
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return []models.DepthReading{}, nil
	}

	ids := make([]string, len(deployments))
	for i, d := range deployments {
		ids[i] = d.DeploymentID
	}
	return c.GetDepthData(ctx, start, end, ids)
}
