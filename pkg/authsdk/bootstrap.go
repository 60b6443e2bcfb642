package authsdk

import (
	"context"
	"net/http"
)

// BootstrapTokenHeader carries the BOOTSTRAP_TOKEN of the server.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Bootstrap seeds an empty system with roles and an admin user.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", body, map[string]string{
		"Content-Type":       "application/json",
		BootstrapTokenHeader: token,
	})
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
