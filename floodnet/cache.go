package floodnet

import (
	"time"

	"github.com/floodnet-nyc/floodnet-go/models"
)

// DefaultTTL is how long a fetched deployment collection stays fresh.
const DefaultTTL = 24 * time.Hour

// deploymentCache holds the one deployment collection the client knows
// about. The collection is replaced wholesale on every refill; there is no
// partial invalidation. Not safe for concurrent mutation — callers sharing a
// Client across goroutines must serialize access themselves.
type deploymentCache struct {
	deployments []models.Deployment
	fetchedAt   time.Time
	populated   bool
	ttl         time.Duration
	now         func() time.Time
}

func newDeploymentCache(ttl time.Duration) *deploymentCache {
	return &deploymentCache{ttl: ttl, now: time.Now}
}

// fresh reports whether the cached collection can be served without a fetch.
// An entry that was deliberately populated empty is still a hit.
func (c *deploymentCache) fresh() bool {
	return c.populated && c.now().Sub(c.fetchedAt) < c.ttl
}

func (c *deploymentCache) set(deployments []models.Deployment) {
	c.deployments = deployments
	c.fetchedAt = c.now()
	c.populated = true
}

func (c *deploymentCache) clear() {
	c.deployments = nil
	c.fetchedAt = time.Time{}
	c.populated = false
}
