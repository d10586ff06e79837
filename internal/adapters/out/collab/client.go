// Package collab holds the HTTP clients for the external collaborators:
// the restaurant catalog, the identity service, settlement and
// notifications. Each client talks plain JSON over HTTP and translates
// transport failures into errs sentinel errors so the core never sees
// net/http details.
package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// newHTTPClient builds the http.Client shared by the collaborator clients.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes a 200 response into out.
// The status code is returned for non-2xx responses so callers can map
// 404 to their own not-found error.
func getJSON(ctx context.Context, client *http.Client, url string, out any) (int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return response.StatusCode, fmt.Errorf("unexpected status %d", response.StatusCode)
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return response.StatusCode, err
	}
	return response.StatusCode, nil
}

// postJSON performs a POST with a JSON body and accepts any 2xx response.
func postJSON(ctx context.Context, client *http.Client, url string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}
	return nil
}
