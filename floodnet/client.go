// Package floodnet is a client for the NYC FloodNet flood-depth sensor API.
//
// The client fetches deployment metadata and time-series depth readings,
// validates each record, and caches the deployment collection for 24 hours.
// All network operations are synchronous and blocking; there are no retries.
package floodnet

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/floodnet-nyc/floodnet-go/models"
)

// DefaultBaseURL is the public FloodNet REST API.
const DefaultBaseURL = "https://api.dev.floodlabs.nyc/api/rest/"

const requestTimeout = 30 * time.Second

// timeParamLayout is the timestamp format the depth endpoint expects.
const timeParamLayout = "2006-01-02T15:04:05.000000Z"

// Client fetches FloodNet sensor data. Construct with NewClient.
// A Client is not safe for concurrent use; give each goroutine its own
// instance or serialize access externally.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *deploymentCache
	log        *zap.SugaredLogger
}

// NewClient creates a client against the public FloodNet API with the
// default 24-hour deployment cache and a no-op logger.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      newDeploymentCache(DefaultTTL),
		log:        zap.NewNop().Sugar(),
	}
}

// SetBaseURL points the client at a different API root, e.g. a staging
// instance or a test server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetLogger replaces the client's logger. Passing nil restores the no-op
// logger.
func (c *Client) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c.log = log
}

// ListDeployments returns all deployment records, served from cache while
// the last fetch is younger than the TTL. forceRefresh bypasses the check
// and always re-fetches, replacing the cached collection wholesale.
func (c *Client) ListDeployments(ctx context.Context, forceRefresh bool) ([]models.Deployment, error) {
	if !forceRefresh && c.cache.fresh() {
		return c.cache.deployments, nil
	}

	deployments, err := c.fetchDeployments(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.set(deployments)
	return deployments, nil
}

func (c *Client) fetchDeployments(ctx context.Context) ([]models.Deployment, error) {
	c.log.Info("fetching deployment data")

	var envelope deploymentsEnvelope
	if err := c.getJSON(ctx, "deployments/flood", nil, &envelope); err != nil {
		return nil, err
	}

	deployments, skipped := parseDeployments(envelope.Deployments)
	if skipped > 0 {
		c.log.Infow("skipped invalid deployment records", "skipped", skipped)
	}
	c.log.Infow("processed deployment records", "count", len(deployments))
	return deployments, nil
}

// DeploymentIDs returns the identifiers of all known deployments, using the
// cache like ListDeployments.
func (c *Client) DeploymentIDs(ctx context.Context) ([]string, error) {
	deployments, err := c.ListDeployments(ctx, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(deployments))
	for i, d := range deployments {
		ids[i] = d.DeploymentID
	}
	return ids, nil
}

// ClearCache drops the cached deployment collection; the next listing will
// fetch from the API regardless of TTL.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// GetDepthData fetches depth readings for the given time window. A nil
// deploymentIDs slice means all currently known deployments. The API serves
// one deployment per request, so retrieval is one sequential round trip per
// identifier; readings are concatenated in response order, not globally
// time-sorted. An empty result is a valid outcome, not an error.
func (c *Client) GetDepthData(ctx context.Context, start, end time.Time, deploymentIDs []string) ([]models.DepthReading, error) {
	if !start.Before(end) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	if deploymentIDs == nil {
		ids, err := c.DeploymentIDs(ctx)
		if err != nil {
			return nil, err
		}
		deploymentIDs = ids
	}

	params := url.Values{}
	params.Set("start_time", start.UTC().Format(timeParamLayout))
	params.Set("end_time", end.UTC().Format(timeParamLayout))

	c.log.Infow("fetching depth data", "deployments", len(deploymentIDs))

	readings := make([]models.DepthReading, 0)
	for _, id := range deploymentIDs {
		var envelope depthEnvelope
		path := "deployments/flood/" + url.PathEscape(id) + "/depth"
		if err := c.getJSON(ctx, path, params, &envelope); err != nil {
			return nil, err
		}

		valid, skipped := parseDepthReadings(envelope.DepthData)
		if skipped > 0 {
			c.log.Infow("skipped invalid readings", "deployment", id, "skipped", skipped)
		}
		readings = append(readings, valid...)
	}

	c.log.Infow("retrieved depth readings", "count", len(readings))
	return readings, nil
}
