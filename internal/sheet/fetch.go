package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxSheetSize caps the fetched CSV body (10MB). Published timeline sheets
// are a few hundred KB at most; anything larger is a misconfigured URL.
var maxSheetSize int64 = 10 * 1024 * 1024

// Fetcher retrieves the raw CSV text for a load. Implementations must honor
// the context and treat any non-success response as an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches the published sheet over plain HTTP(S). A non-2xx
// status is a fatal, non-retried error.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch sheet: unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetSize+1))
	if err != nil {
		return nil, fmt.Errorf("read sheet body: %w", err)
	}
	if int64(len(data)) > maxSheetSize {
		return nil, fmt.Errorf("sheet exceeds %dMB limit", maxSheetSize/(1024*1024))
	}

	return data, nil
}
