package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"

	"github.com/felipemarinho97/torrent-catalog/logging"
)

// Requester is the HTTP client shared by every source client. Each call
// carries a short per-attempt timeout; failed attempts (transport error,
// non-200, empty body) are retried with exponential backoff before the
// caller moves on to the next mirror domain.
type Requester struct {
	httpClient *http.Client
	attempts   uint
	retryBase  time.Duration
}

func NewRequester(timeout time.Duration, attempts int, retryBase time.Duration) *Requester {
	if attempts < 1 {
		attempts = 1
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DisableCompression:  false,
			MaxIdleConns:        100,              // Increase connection pool
			MaxIdleConnsPerHost: 10,               // More connections per host
			IdleConnTimeout:     90 * time.Second, // Keep connections alive longer
			DisableKeepAlives:   false,            // Enable keep-alive
			ForceAttemptHTTP2:   true,             // Use HTTP/2 when possible
		},
	}

	return &Requester{httpClient: httpClient, attempts: uint(attempts), retryBase: retryBase}
}

// Get fetches the URL and returns the raw response body. It retries up to
// the configured attempt count with backoff (base * 2^attempt); the last
// error is returned once every attempt is spent.
func (r *Requester) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request for url %s: %w", url, err))
			}
			spoofBrowserHeaders(req)

			resp, err := r.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("failed to do request for url %s: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %s for url %s", resp.Status, url)
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}
			if len(body) == 0 {
				return fmt.Errorf("empty response body for url %s", url)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.retryBase),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logging.Debug().Err(err).Uint("attempt", attempt).Str("url", url).Msg("Retrying request")
		}),
	)
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("url", url).Int("bytes", len(body)).Msg("Request served")
	return body, nil
}
