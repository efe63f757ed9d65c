// Package fetch is the HTTP transport collaborator: a cookie-carrying
// client with a Chrome TLS fingerprint, browser headers, bounded retries
// with exponential backoff, and charset normalization. The engine treats
// every error it returns as a soft miss.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	utls "github.com/refraction-networking/utls"

	"github.com/Ankitzoro/imdb-top250-scraper/config"
	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 * 1024 * 1024

// Client performs all network access for the scraper. It is safe for
// concurrent use, though the engine only ever issues one fetch at a time.
type Client struct {
	http  *http.Client
	cfg   config.HTTPConfig
	cache *pageCache // nil when disabled

	// backoffUnit scales the exponential retry backoff; tests shorten it.
	backoffUnit time.Duration
}

// New creates a Client with a fresh cookie jar and a Chrome-fingerprint
// TLS dialer.
func New(cfg config.HTTPConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, "create cookie jar", err)
	}

	c := &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialTLSContext: dialTLSChrome,
			},
		},
		cfg:         cfg,
		backoffUnit: time.Second,
	}
	if cfg.CacheEntries > 0 {
		c.cache = newPageCache(cfg.CacheEntries, cfg.CacheTTL)
	}
	return c, nil
}

// Warmup visits the given URL once so the session picks up site cookies.
// Failure is logged and otherwise ignored.
func (c *Client) Warmup(ctx context.Context, rawURL string) {
	if _, err := c.once(ctx, rawURL, nil); err != nil {
		slog.Warn("session warmup failed", "url", rawURL, "error", err)
		return
	}
	slog.Info("session initialized", "url", rawURL)
}

// Fetch retrieves rawURL, retrying failed attempts with exponential
// backoff (1s, 2s, ...). Extra headers override the default browser set.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.get(rawURL); ok {
			slog.Debug("page cache hit", "url", rawURL)
			return body, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.Retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * c.backoffUnit
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.once(ctx, rawURL, headers)
		if err == nil {
			if c.cache != nil {
				c.cache.set(rawURL, body)
			}
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Debug("fetch attempt failed", "url", rawURL, "attempt", attempt+1, "error", err)
		lastErr = err
	}
	return nil, lastErr
}

// once performs a single request.
func (c *Client) once(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, "build request", err)
	}
	c.applyHeaders(req, headers)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewScrapeError(models.ErrCodeBadStatus,
			fmt.Sprintf("HTTP %d for %s", resp.StatusCode, rawURL), nil)
	}

	body, err := decode(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, "read body", err)
	}
	return body, nil
}

// applyHeaders sets the browser identity on the request. Accept-Encoding
// is deliberately left to the transport so compressed responses are
// decompressed transparently.
func (c *Client) applyHeaders(req *http.Request, extra map[string]string) {
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint
// via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := utls.UClient(rawConn, &utls.Config{
		ServerName: host,
	}, utls.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
