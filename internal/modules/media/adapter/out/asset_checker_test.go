package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	mediaout "tutorcast/internal/modules/media/adapter/out"
)

func TestHTTPAssetChecker(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/audio/ws/q1_1.mp3":
			if r.Header.Get("Range") == "" {
				t.Errorf("expected range header")
			}
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write([]byte("ID3"))
		case "/audio/ws/empty_1.mp3":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	checker := mediaout.NewHTTPAssetChecker(srv.URL+"/", srv.Client())
	if err := checker.Check(context.Background(), "/audio/ws/q1_1.mp3"); err != nil {
		t.Fatalf("existing asset should pass: %v", err)
	}
	if err := checker.Check(context.Background(), "/audio/ws/missing_1.mp3"); err == nil {
		t.Fatalf("404 should fail")
	}
	if err := checker.Check(context.Background(), "/audio/ws/empty_1.mp3"); err == nil {
		t.Fatalf("empty body should fail")
	}
}

func TestFileAssetChecker(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	dir := filepath.Join(root, "audio", "ws")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "q1_1.mp3"), []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty_1.mp3"), nil, 0o644); err != nil {
		t.Fatalf("write empty asset: %v", err)
	}
	checker := mediaout.NewFileAssetChecker(root)
	if err := checker.Check(context.Background(), "/audio/ws/q1_1.mp3"); err != nil {
		t.Fatalf("existing asset should pass: %v", err)
	}
	if err := checker.Check(context.Background(), "/audio/ws/empty_1.mp3"); err == nil {
		t.Fatalf("empty asset should fail")
	}
	if err := checker.Check(context.Background(), "/audio/ws/none.mp3"); err == nil {
		t.Fatalf("missing asset should fail")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := checker.Check(ctx, "/audio/ws/q1_1.mp3"); err == nil {
		t.Fatalf("cancelled context should fail")
	}
}
