package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrBadStatus = errors.New("non-2xx response")

// GetBytes fetches url with client and returns the body of a 2xx response.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
