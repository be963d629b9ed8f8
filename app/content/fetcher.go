package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const maxPayloadSize = 5 << 20

// Fetcher retrieves the raw payload behind a source locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

var _ Fetcher = (*SourceFetcher)(nil)

// SourceFetcher issues one bounded request per call. Locators starting with
// http:// or https:// go over the network, anything else is read from disk.
type SourceFetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	maxPayload int64
}

func NewSourceFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *SourceFetcher {
	return &SourceFetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
		maxPayload: maxPayloadSize,
	}
}

func (f *SourceFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if isRemote(locator) {
		return f.fetchRemote(timeoutCtx, locator)
	}
	return f.readLocal(timeoutCtx, locator)
}

func (f *SourceFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrNetwork, err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP error: %s", ErrNetwork, resp.Status)
	}

	data, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrNetwork, url, err)
	}

	return data, nil
}

func (f *SourceFetcher) readLocal(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	path := strings.TrimPrefix(locator, "file://")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrNetwork, path, err)
	}
	defer file.Close()

	data, err := f.readLimited(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrNetwork, path, err)
	}

	return data, nil
}

// readLimited fails instead of truncating payloads larger than maxPayload.
func (f *SourceFetcher) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxPayload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxPayload {
		return nil, fmt.Errorf("payload too large: exceeds %d bytes", f.maxPayload)
	}
	return data, nil
}

func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
