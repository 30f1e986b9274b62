package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedSource is returned for URLs that are neither http(s) nor data URIs.
var ErrUnsupportedSource = errors.New("unsupported photo source")

const (
	defaultUserAgent = "folio/0.1"
	fetchTimeout     = 15 * time.Second
	maxFetchBytes    = 32 << 20
	cacheEntries     = 16
)

// Loader reads photo bytes from data URIs and remote URLs. Remote responses
// are kept in a small in-memory cache.
type Loader struct {
	http *http.Client

	mu    sync.Mutex
	cache map[string][]byte
	order []string
}

// NewLoader returns a loader using its own HTTP client.
func NewLoader() *Loader {
	return &Loader{
		http:  &http.Client{Timeout: fetchTimeout},
		cache: make(map[string][]byte),
	}
}

// Bytes returns the encoded image for src.
func (l *Loader) Bytes(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	switch {
	case strings.HasPrefix(src, "data:"):
		_, data, err := DecodeDataURI(src)
		return data, err
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		if data, ok := l.cached(src); ok {
			return data, nil
		}
		data, err := l.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		l.store(src, data)
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, truncate(src, 32))
	}
}

// Image loads and decodes src.
func (l *Loader) Image(ctx context.Context, src string) (image.Image, error) {
	data, err := l.Bytes(ctx, src)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s returned status %d", hostOf(src), resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("fetch %s: image larger than %d bytes", hostOf(src), maxFetchBytes)
	}
	return data, nil
}

func (l *Loader) cached(src string) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, ok := l.cache[src]
	return data, ok
}

func (l *Loader) store(src string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[src]; ok {
		return
	}
	if len(l.order) >= cacheEntries {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.cache, oldest)
	}
	l.cache[src] = data
	l.order = append(l.order, src)
}

// EncodeDataURI builds a base64 data URI for data with the given media type.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URI", ErrUnsupportedSource)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI has no payload")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URI: %w", err)
		}
		return mediaType, []byte(decoded), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mediaType, data, nil
}

func hostOf(src string) string {
	if u, err := url.Parse(src); err == nil && u.Host != "" {
		return u.Host
	}
	return truncate(src, 32)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
