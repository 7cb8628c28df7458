// ABOUTME: Tests for website target fetching
// ABOUTME: Covers URL detection, file reads, cancellation, and anchor bases
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"https://chairaharder.com", true},
		{"http://localhost:8080/about", true},
		{"HTTPS://CHAIRAHARDER.COM", true},
		{"site/index.html", false},
		{"/var/www/index.html", false},
		{"ftp://example.com/file", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.target); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestFetchAsText_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte("<html>hi</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFetcher().FetchAsText(context.Background(), path)
	if err != nil {
		t.Fatalf("FetchAsText() error = %v", err)
	}
	if got != "<html>hi</html>" {
		t.Errorf("FetchAsText() = %q", got)
	}
}

func TestFetchAsText_FileHonorsCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte("<html>hi</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher().FetchAsText(ctx, path)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("error should carry the cancellation cause: %v", err)
	}
}

func TestCanonicalBase(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		siteURL string
		want    string
	}{
		{"url target wins", "https://chairaharder.com/work/", "https://other.example", "https://chairaharder.com/work"},
		{"file target uses site url", "site/index.html", "https://chairaharder.com/", "https://chairaharder.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalBase(tt.target, tt.siteURL); got != tt.want {
				t.Errorf("CanonicalBase() = %q, want %q", got, tt.want)
			}
		})
	}
}
