package backend

import (
	"context"
	"path/filepath"
	"testing"

	"budget/internal/config"
)

func TestTypeValidity(t *testing.T) {
	for _, bt := range []Type{FileBackend, SQLiteBackend, MemoryBackend} {
		if !bt.IsValid() {
			t.Fatalf("%s should be valid", bt)
		}
	}
	if Type("redis").IsValid() {
		t.Fatalf("redis is not a supported backend")
	}
}

func TestFactoryCreatesMemoryAndFile(t *testing.T) {
	f := NewFactory(nil)

	mem, err := f.Create(Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	defer mem.Cleanup()

	file, err := f.Create(Config{Type: FileBackend, DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	defer file.Cleanup()

	ctx := context.Background()
	for _, r := range []*Result{mem, file} {
		if err := r.Store.Set(ctx, "k", []byte("v")); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := r.Store.Get(ctx, "k")
		if err != nil || string(got) != "v" {
			t.Fatalf("get: %q err=%v", got, err)
		}
	}
}

func TestFactoryRejectsIncompleteConfig(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.Create(Config{Type: FileBackend}); err == nil {
		t.Fatalf("file backend without directory should fail")
	}
	if _, err := f.Create(Config{Type: SQLiteBackend}); err == nil {
		t.Fatalf("sqlite backend without path should fail")
	}
	if _, err := f.Create(Config{Type: "bogus"}); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}

func TestFromAppConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StorageBackend: "sqlite",
		DataDir:        dir,
		SQLiteDBPath:   filepath.Join(dir, "budget.db"),
	}
	bc, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("from app config: %v", err)
	}
	if bc.Type != SQLiteBackend || bc.SQLiteDBPath != cfg.SQLiteDBPath {
		t.Fatalf("unexpected backend config: %+v", bc)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("nil config should fail")
	}
	if _, err := FromAppConfig(&config.Config{StorageBackend: "nope"}); err == nil {
		t.Fatalf("invalid backend should fail")
	}
}
