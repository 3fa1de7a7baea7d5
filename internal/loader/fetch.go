package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "humbler/1.0"
)

// ErrTransport matches every *TransportError.
var ErrTransport = errors.New("transport error")

// TransportError is a failure to obtain the raw document, over HTTP or
// from disk.
type TransportError struct {
	Source string
	// StatusCode is the HTTP status for non-200 responses, 0 otherwise
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := "fetching " + e.Source
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Option configures how a document is fetched.
type Option func(*fetchConfig)

type fetchConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(c *fetchConfig) {
		c.httpClient = client
	}
}

// WithTimeout bounds the whole HTTP exchange. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *fetchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *fetchConfig) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// Fetch returns the raw document: an HTTP GET for http(s) sources, a file
// read otherwise.
func Fetch(ctx context.Context, source string, opts ...Option) ([]byte, error) {
	cfg := fetchConfig{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if isURL(source) {
		return fetchURL(ctx, source, &cfg)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &TransportError{Source: source, Err: err}
	}
	return data, nil
}

func fetchURL(ctx context.Context, source string, cfg *fetchConfig) ([]byte, error) {
	client := cfg.httpClient
	if client == nil {
		client = &http.Client{}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &TransportError{Source: source, Err: err}
	}
	req.Header.Set("User-Agent", cfg.userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Source: source, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Source: source, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Source: source, Err: fmt.Errorf("reading response body: %w", err)}
	}
	return data, nil
}

// isURL mirrors how sources are told apart: anything starting with http is
// fetched over the network.
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
