package core

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultSourcePath is the archive export served with the site.
const DefaultSourcePath = "/exoplanet-data.csv"

// Fetcher retrieves the full text of a CSV resource. Every call re-reads the
// resource; caching is layered on top by Cache.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// HTTPFetcher performs a GET against BaseURL+path. It does not retry.
type HTTPFetcher struct {
	BaseURL  string
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher creates a fetcher with its own client and timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	url := f.BaseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return "", &FetchError{Path: path, StatusCode: resp.StatusCode}
	}

	text, err := readSource(resp.Body, f.MaxBytes)
	if err != nil {
		if errors.Is(err, ErrSourceTooLarge) {
			return "", err
		}
		return "", &FetchError{Path: path, Err: err}
	}
	return text, nil
}

// FileFetcher reads the resource from a local directory. The path is
// resolved inside Root; it cannot escape it.
type FileFetcher struct {
	Root     string
	MaxBytes int64

	fsys fs.FS
}

// NewFileFetcher creates a fetcher rooted at dir.
func NewFileFetcher(dir string, maxBytes int64) *FileFetcher {
	return &FileFetcher{Root: dir, MaxBytes: maxBytes, fsys: os.DirFS(dir)}
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fsys := f.fsys
	if fsys == nil {
		fsys = os.DirFS(f.Root)
	}

	name := strings.TrimLeft(path, "/")
	if !fs.ValidPath(name) {
		return "", &FetchError{Path: path, Err: fs.ErrInvalid}
	}

	file, err := fsys.Open(name)
	if err != nil {
		return "", &FetchError{Path: path, Err: err}
	}
	defer file.Close()

	text, err := readSource(file, f.MaxBytes)
	if err != nil {
		if errors.Is(err, ErrSourceTooLarge) {
			return "", err
		}
		return "", &FetchError{Path: path, Err: err}
	}
	return text, nil
}
