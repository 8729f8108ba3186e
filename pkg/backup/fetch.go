package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Browser-style agent; several list hosts refuse the Go default.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/40.0.2214.85 Safari/537.36"

const defaultTimeout = 20 * time.Second

// Fetcher downloads source documents, one at a time.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

// NewFetcher builds a Fetcher with the given timeout and User-Agent; zero
// values fall back to the package defaults.
func NewFetcher(timeout time.Duration, userAgent string, log *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch retrieves the full document for one source. Statuses of 400 and
// above fail the fetch. A final status in the 300s is only warned about and
// the body is still processed, as is a body that looks like HTML.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.log.Warn("failed to close source response body", "error", err)
		}
	}()

	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusMultipleChoices:
		f.log.Warn("redirect status from source", "source", src.ID(), "status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > 0 && data[0] == '<' {
		f.log.Warn("source content looks like HTML", "source", src.ID(), "url", src.URL)
	}
	return data, nil
}
