// pkg/catalog/fetch.go - retrieval and validation of the catalog document.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrFetchFailed marks transport-level failures, including timeouts.
	ErrFetchFailed = errors.New("catalog fetch failed")

	// ErrMalformedPayload marks a response body that is not valid JSON.
	ErrMalformedPayload = errors.New("catalog payload is not valid JSON")

	// ErrSchemaMismatch marks a document in which any entry is missing a
	// required field. The whole document is rejected, never individual
	// entries.
	ErrSchemaMismatch = errors.New("catalog payload does not match the catalog schema")
)

// BadStatusError marks an HTTP response outside the success range.
type BadStatusError struct {
	Code int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status code: %d", e.Code)
}

// Fetcher retrieves catalog documents over HTTP. Each call is one-shot:
// no retries, no caching of the response.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with the given request timeout. A zero or
// negative timeout falls back to the default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// rawEntry mirrors the wire format with pointer fields so a missing key
// is distinguishable from an empty string.
type rawEntry struct {
	Path        *string `json:"path"`
	Name        *string `json:"name"`
	Version     *string `json:"version"`
	UUID        *string `json:"uuid"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

// Fetch retrieves and validates the catalog document at url. Failures are
// classified as ErrFetchFailed, *BadStatusError, ErrMalformedPayload, or
// ErrSchemaMismatch; callers are expected to treat all four as "no catalog
// available this run".
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BadStatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return parseDocument(body)
}

// parseDocument decodes and validates a catalog document. Validation is
// all-or-nothing: one incomplete entry invalidates the document.
func parseDocument(body []byte) ([]Entry, error) {
	var raw []rawEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, re := range raw {
		if re.Path == nil || re.Name == nil || re.Version == nil ||
			re.UUID == nil || re.Description == nil || re.Website == nil {
			return nil, fmt.Errorf("%w: entry %d is missing required fields", ErrSchemaMismatch, i)
		}
		id, err := uuid.Parse(*re.UUID)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d has invalid uuid %q", ErrSchemaMismatch, i, *re.UUID)
		}
		entries = append(entries, Entry{
			Path:        *re.Path,
			Name:        *re.Name,
			Version:     *re.Version,
			Identity:    id,
			Description: *re.Description,
			Website:     *re.Website,
		})
	}
	return entries, nil
}
