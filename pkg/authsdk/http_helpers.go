package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doJSON sends in as a JSON body. A non-empty accessToken is sent as a
// bearer token.
func (c *SDKClient) doJSON(ctx context.Context, method, path, accessToken string, in any) (*http.Response, error) {
	headers := map[string]string{"Accept": "application/json"}
	if accessToken != "" {
		headers["Authorization"] = "Bearer " + accessToken
	}

	var body io.Reader
	if in != nil {
		b, err := jsonBody(in)
		if err != nil {
			return nil, err
		}
		body = b
		headers["Content-Type"] = "application/json"
	}

	return c.doRequest(ctx, method, path, body, headers)
}

func jsonBody(in any) (io.Reader, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// decodeJSON decodes the response into target. A status other than
// expectedStatus, or an envelope with error set, becomes an *APIError.
// target may be nil when only the envelope matters.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	var env Envelope
	if err := json.Unmarshal(bodyBytes, &env); err == nil && env.Error {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
