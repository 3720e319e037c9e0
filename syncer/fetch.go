package syncer

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Fetcher retrieves the raw published text for a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches published-CSV URLs over plain HTTP(S). Redirects are
// followed - Google's publish-to-web URLs redirect to a content host.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", &FetchError{Reason: ReasonConnection}
	}

	response, err := f.client.Do(request)
	if err != nil {
		return "", fetchError(err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", &FetchError{Reason: ReasonHTTPStatus, Status: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fetchError(err)
	}

	return string(body), nil
}

func fetchError(err error) *FetchError {
	if timeout(err) {
		return &FetchError{Reason: ReasonTimeout}
	}

	return &FetchError{Reason: ReasonConnection}
}

func timeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	return false
}
