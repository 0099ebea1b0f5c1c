package tabs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultFaviconEndpoint is the lookup service queried by hostname
const DefaultFaviconEndpoint = "https://www.google.com/s2/favicons"

// Hostname strips the scheme and leading "www." and returns everything up
// to the first path separator.
func Hostname(rawURL string) string {
	host := strings.Replace(rawURL, "https://www.", "", 1)
	host = strings.Replace(host, "https://", "", 1)
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	return host
}

// Glyph returns the letter shown in place of a favicon that could not be loaded
func Glyph(icon Icon) string {
	tag := string(icon)
	switch {
	case strings.Contains(tag, "globe"):
		return "G"
	case strings.Contains(tag, "home"):
		return "H"
	case strings.Contains(tag, "star"):
		return "S"
	case strings.Contains(tag, "heart"):
		return "♥"
	case strings.Contains(tag, "bolt"):
		return "⚡"
	case strings.Contains(tag, "fire"):
		return "🔥"
	default:
		return "T"
	}
}

// FaviconStatus is the outcome of a favicon lookup
type FaviconStatus int

const (
	FaviconUnknown FaviconStatus = iota // not probed yet
	FaviconPending
	FaviconFound
	FaviconMissing
)

// FaviconProbe checks whether the lookup service has an icon for a host
type FaviconProbe struct {
	Endpoint string
	Size     int
	Client   *http.Client
}

// NewFaviconProbe creates a probe against endpoint with the given request timeout
func NewFaviconProbe(endpoint string, size int, timeout time.Duration) *FaviconProbe {
	if endpoint == "" {
		endpoint = DefaultFaviconEndpoint
	}
	if size <= 0 {
		size = 32
	}
	return &FaviconProbe{
		Endpoint: endpoint,
		Size:     size,
		Client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the lookup address for host
func (p *FaviconProbe) URL(host string) string {
	q := url.Values{}
	q.Set("domain", host)
	q.Set("sz", fmt.Sprintf("%d", p.Size))
	return p.Endpoint + "?" + q.Encode()
}

// Lookup requests the icon for host. Any transport error, non-200 status or
// non-image body is reported as an error; callers fall back to Glyph.
func (p *FaviconProbe) Lookup(ctx context.Context, host string) error {
	if host == "" {
		return fmt.Errorf("favicon lookup: empty host")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(host), nil)
	if err != nil {
		return fmt.Errorf("favicon lookup %s: %w", host, err)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("favicon lookup %s: %w", host, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("favicon lookup %s: status %d", host, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("favicon lookup %s: unexpected content type %q", host, ct)
	}
	return nil
}
