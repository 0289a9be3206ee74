package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/renderfig/renderfig/pkg/diagram"
)

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("digraph{A->B}"))
	h2 := Hash([]byte("digraph{A->B}"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("digraph{A->C}"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-1 produces 40 hex chars
	if len(h1) != 40 {
		t.Errorf("Hash length should be 40, got %d", len(h1))
	}
}

func TestDirCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewDirCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}
	defer c.Close()

	key := Hash([]byte("digraph{A->B}"))
	payload := []byte("<svg/>")

	if _, _, ok, _ := c.Get(ctx, key); ok {
		t.Fatal("Get before Set should miss")
	}

	if err := c.Set(ctx, key, payload, diagram.MIMESVG); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, mimeType, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if !bytes.Equal(data, payload) {
		t.Error("Get returned different bytes than Set stored")
	}
	if mimeType != diagram.MIMESVG {
		t.Errorf("mimeType = %s, want %s", mimeType, diagram.MIMESVG)
	}
}

func TestDirCacheFileLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewDirCache(dir)
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}

	key := Hash([]byte("source"))
	if err := c.Set(ctx, key, []byte("png-bytes"), diagram.MIMEPNG); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Entries are stored as <hash>.<ext> directly under the root.
	if _, err := os.Stat(filepath.Join(dir, key+".png")); err != nil {
		t.Errorf("expected %s.png in cache dir: %v", key, err)
	}
}

func TestDirCacheProbeOrder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewDirCache(dir)
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}

	key := Hash([]byte("source"))
	// Both a PDF and a PNG entry exist; PDF must win the probe.
	if err := os.WriteFile(filepath.Join(dir, key+".png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, key+".pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, mimeType, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if mimeType != diagram.MIMEPDF {
		t.Errorf("probe order should prefer pdf, got %s", mimeType)
	}
	if string(data) != "pdf" {
		t.Errorf("data = %q, want pdf entry", data)
	}
}

func TestDirCacheUnknownMIME(t *testing.T) {
	c, err := NewDirCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}
	if err := c.Set(context.Background(), "key", []byte("x"), "image/webp"); err == nil {
		t.Error("Set with unmapped MIME type should fail")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), diagram.MIMESVG); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	data, mimeType, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok || data != nil || mimeType != "" {
		t.Error("NullCache should never store data")
	}
}

func TestOpen(t *testing.T) {
	// Disabled caching yields a NullCache.
	if _, ok := Open(false, t.TempDir()).(*NullCache); !ok {
		t.Error("Open with caching disabled should return a NullCache")
	}

	// Enabled with an explicit directory yields a DirCache at that directory.
	dir := filepath.Join(t.TempDir(), "cache")
	c, ok := Open(true, dir).(*DirCache)
	if !ok {
		t.Fatal("Open with explicit dir should return a DirCache")
	}
	if c.Dir() != dir {
		t.Errorf("Dir = %s, want %s", c.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Open should create the cache dir: %v", err)
	}
}
