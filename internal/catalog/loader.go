// Package catalog fetches the station catalog from the remote stations API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

// ErrFetch wraps every network, status and decoding failure of a load.
var ErrFetch = errors.New("failed to fetch stations")

// HTTPLoader reads the catalog with a single GET request and never retries.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates a loader whose requests are bounded by timeout.
// A zero timeout leaves requests bounded by the context only.
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{client: &http.Client{Timeout: timeout}}
}

// Load fetches and validates the catalog served at endpoint.
func (l *HTTPLoader) Load(ctx context.Context, endpoint string) (*entities.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetch, resp.Status)
	}

	var stations []entities.Station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFetch, err)
	}

	c, err := entities.NewCatalog(stations)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	return c, nil
}
