package floodnet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// deploymentsEnvelope is the wire shape of the deployment listing endpoint.
// Records stay raw so each one can be validated independently.
type deploymentsEnvelope struct {
	Deployments []json.RawMessage `json:"deployments"`
}

// depthEnvelope is the wire shape of the per-deployment depth endpoint.
type depthEnvelope struct {
	DepthData []json.RawMessage `json:"depth_data"`
}

// getJSON performs one GET round trip against the API and decodes the
// response body into out. Transport failures and non-2xx statuses become a
// *TransportError, undecodable bodies a *DecodeError. No retries.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	requestURL := strings.TrimSuffix(c.baseURL, "/") + "/" + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &TransportError{URL: requestURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{URL: requestURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{URL: requestURL, Err: err}
	}
	return nil
}
