package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	progressout "tutorcast/internal/modules/progress/adapter/out"
	progressport "tutorcast/internal/modules/progress/port/out"
	"tutorcast/internal/platform/clock"
)

func exerciseStore(t *testing.T, store progressport.KVStore) {
	t.Helper()
	ctx := context.Background()
	if _, found, err := store.Get(ctx, "worksheet_page_state_ws_1"); err != nil || found {
		t.Fatalf("missing key should be not found, got found=%v err=%v", found, err)
	}
	if err := store.Set(ctx, "worksheet_page_state_ws_1", `{"a":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "worksheet_page_state_ws_1", `{"a":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, found, err := store.Get(ctx, "worksheet_page_state_ws_1")
	if err != nil || !found || v != `{"a":2}` {
		t.Fatalf("unexpected get: %q %v %v", v, found, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, progressout.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exerciseStore(t, progressout.NewFileStore(dir))
	if _, err := os.Stat(filepath.Join(dir, "session", "worksheet_page_state_ws_1.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := progressout.NewFileStore(dir)
	if err := store.Set(context.Background(), "../escape/key", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "session"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one sanitized file, got %v %v", entries, err)
	}
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	store, err := progressout.NewSQLiteStore(filepath.Join(t.TempDir(), ".tutorcast", "tutorcast.db"), clock.Fixed(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	t.Parallel()
	addr := os.Getenv("TUTORCAST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TUTORCAST_TEST_REDIS_ADDR not set")
	}
	store, err := progressout.NewRedisStore(context.Background(), addr, time.Minute)
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	exerciseStore(t, store)
}
