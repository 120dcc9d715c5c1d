package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/render"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	matrixPath := filepath.Join(dir, "case.ginteractions")
	content := "chr1\t0\t1000\tchr1\t0\t1000\t4.0\nchr1\t0\t1000\tchr1\t2000\t3000\t2.0\n"
	if err := os.WriteFile(matrixPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing matrix fixture: %v", err)
	}
	return New(figure.Options{
		MatrixA:    matrixPath,
		Resolution: 1000,
	}, render.Options{Width: 3, DPI: 72}, nil)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
}

func TestFigureEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/figure?region=chr1:0-4000&format=svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if rec.Header().Get("X-Render-Id") == "" {
		t.Errorf("missing X-Render-Id header")
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("body does not look like SVG")
	}
}

func TestFigureEndpointErrors(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing region", "/api/v1/figure", http.StatusBadRequest},
		{"malformed region", "/api/v1/figure?region=chr1", http.StatusBadRequest},
		{"bad format", "/api/v1/figure?region=chr1:0-4000&format=bmp", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestFigureEndpointMissingMatrix(t *testing.T) {
	srv := New(figure.Options{
		MatrixA:    "missing.ginteractions",
		Resolution: 1000,
	}, render.Options{}, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/figure?region=chr1:0-4000", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
