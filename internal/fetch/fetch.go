// Package fetch reads source image bytes from a URL.
//
// A fetch is one blocking read with no retries. http and https URLs go
// through an *http.Client, and file URLs read from the local filesystem. The
// body is capped at MaxBytes; decoded size is bounded separately by
// imaging.Decode. Timeouts come from the caller's context and the client's
// own Timeout, and context errors stay matchable with errors.Is.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultMaxBytes caps response bodies when Fetcher.MaxBytes is zero.
const DefaultMaxBytes = 32 << 20

// DefaultTimeout is the client timeout used by New.
const DefaultTimeout = 30 * time.Second

var (
	// ErrFetch is wrapped by every error returned from Fetch.
	ErrFetch = errors.New("image fetch failed")

	// ErrInvalidURL marks URLs that are malformed or use an unsupported scheme.
	ErrInvalidURL = errors.New("invalid image URL")

	// ErrTooLarge marks bodies longer than the byte limit.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Fetcher fetches image bytes.
type Fetcher struct {
	// Client performs HTTP requests. nil means http.DefaultClient.
	Client *http.Client

	// MaxBytes caps the body length. Zero means DefaultMaxBytes.
	MaxBytes int64

	// UserAgent is sent with HTTP requests when set.
	UserAgent string

	// AllowFile permits file:// URLs.
	AllowFile bool
}

// New returns a Fetcher with a timeout-bounded client.
func New() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: DefaultTimeout},
		UserAgent: "image-builder-mcp",
	}
}

// ParseURL validates rawURL and returns it parsed.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, rawURL)
		}
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrInvalidURL, rawURL)
		}
	case "":
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, rawURL)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return u, nil
}

// Fetch reads the resource at rawURL.
//
// # Errors
//
// Every returned error wraps ErrFetch. Malformed URLs also wrap ErrInvalidURL
// and oversize bodies wrap ErrTooLarge.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var body io.ReadCloser
	switch u.Scheme {
	case "file":
		if !f.AllowFile {
			return nil, fmt.Errorf("%w: %w: file URLs are disabled", ErrFetch, ErrInvalidURL)
		}
		file, err := os.Open(u.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		body = file
	default:
		body, err = f.get(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	}
	defer body.Close()

	limit := f.maxBytes()
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrFetch, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %w: more than %d bytes", ErrFetch, ErrTooLarge, limit)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", u.Redacted(), resp.Status)
	}
	return resp.Body, nil
}

func (f *Fetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return DefaultMaxBytes
}
