package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exoplanet-data.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte("\xEF\xBB\xBFpl_name,hostname\nKepler-22 b,Kepler-22\n"))
		case "/big.csv":
			w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("success strips BOM", func(t *testing.T) {
		f := NewHTTPFetcher(srv.URL+"/", 5*time.Second, 0)
		got, err := f.Fetch(context.Background(), "/exoplanet-data.csv")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if !strings.HasPrefix(got, "pl_name,") {
			t.Errorf("Fetch() = %q, want pl_name prefix", got)
		}
	})

	t.Run("non-2xx is a fetch failure", func(t *testing.T) {
		f := NewHTTPFetcher(srv.URL, 5*time.Second, 0)
		_, err := f.Fetch(context.Background(), "/missing.csv")

		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("Fetch() error = %v, want *FetchError", err)
		}
		if fe.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
		}
		if !errors.Is(err, ErrFetchFailed) {
			t.Error("errors.Is(err, ErrFetchFailed) = false")
		}
	})

	t.Run("size limit", func(t *testing.T) {
		f := NewHTTPFetcher(srv.URL, 5*time.Second, 16)
		_, err := f.Fetch(context.Background(), "/big.csv")
		if !errors.Is(err, ErrSourceTooLarge) {
			t.Fatalf("Fetch() error = %v, want ErrSourceTooLarge", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		f := NewHTTPFetcher("http://127.0.0.1:1", time.Second, 0)
		_, err := f.Fetch(context.Background(), "/exoplanet-data.csv")
		if !errors.Is(err, ErrFetchFailed) {
			t.Fatalf("Fetch() error = %v, want ErrFetchFailed", err)
		}
	})

	t.Run("cancelled context is not a fetch failure", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := NewHTTPFetcher(srv.URL, 5*time.Second, 0)
		_, err := f.Fetch(ctx, "/exoplanet-data.csv")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Fetch() error = %v, want context.Canceled", err)
		}
	})
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "exoplanet-data.csv"), []byte("pl_name,hostname\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFileFetcher(dir, 0)

	got, err := f.Fetch(context.Background(), "/exoplanet-data.csv")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "pl_name,hostname\n" {
		t.Errorf("Fetch() = %q", got)
	}

	if _, err := f.Fetch(context.Background(), "/missing.csv"); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("missing file error = %v, want ErrFetchFailed", err)
	}

	if _, err := f.Fetch(context.Background(), "/../etc/passwd"); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("escaping path error = %v, want ErrFetchFailed", err)
	}
}
