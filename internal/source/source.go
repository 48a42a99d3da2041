// Package source loads popup content from a local file or an http(s) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTimeout   = 15 * time.Second
	maxBodySize      = 2 * 1024 * 1024 // 2 MB
	defaultUserAgent = "tpopup/0.1 (terminal popup demo; +https://github.com/vidyasagar/tpopup)"
)

// ErrUnsupported is returned for responses that are neither HTML nor text.
var ErrUnsupported = errors.New("unsupported content type")

var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ForceAttemptHTTP2:     true,
}

// Document is content ready to be shown in a popup.
type Document struct {
	Title    string
	Body     string
	Location string // final URL after redirects, or the file path
}

// Loader reads documents from disk or over HTTP.
type Loader struct {
	client    *http.Client
	userAgent string
}

// NewLoader creates a Loader with sensible defaults.
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Transport: sharedTransport,
			Timeout:   defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (>10)")
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Load reads ref, which is either an http(s) URL or a file path.
func (l *Loader) Load(ctx context.Context, ref string) (*Document, error) {
	ref = strings.TrimSpace(ref)
	if IsURL(ref) {
		return l.fetch(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	body := string(data)
	return &Document{
		Title:    titleOf(body, filepath.Base(ref)),
		Body:     body,
		Location: ref,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.5")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetching %s: %s", rawURL, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isTextual(ct) {
		return nil, fmt.Errorf("fetching %s: %w: %s", rawURL, ErrUnsupported, ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	finalURL := resp.Request.URL
	body := string(data)
	return &Document{
		Title:    titleOf(body, finalURL.Host),
		Body:     body,
		Location: finalURL.String(),
	}, nil
}

// IsURL reports whether ref should be fetched over HTTP.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func isTextual(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}

// titleOf returns the <title> of an HTML document, or fallback.
func titleOf(body, fallback string) string {
	if !strings.Contains(body, "<") {
		return fallback
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return fallback
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return fallback
}
