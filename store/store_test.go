package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get("highScore"); ok {
		t.Fatalf("Expected empty store")
	}
	if err := m.Set("highScore", "120"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := m.Get("highScore")
	if err != nil || !ok || v != "120" {
		t.Errorf("Expected (120, true, nil), got (%q, %v, %v)", v, ok, err)
	}
}

func TestFilePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.msgpack")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := f.Set("highScore", `{"score":40,"playerName":"ana"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := f.Set("other", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	f.Close()

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	v, ok, err := reopened.Get("highScore")
	if err != nil || !ok {
		t.Fatalf("Expected highScore to persist, got ok=%v err=%v", ok, err)
	}
	if v != `{"score":40,"playerName":"ana"}` {
		t.Errorf("Expected stored record, got %q", v)
	}
	if v, _, _ := reopened.Get("other"); v != "x" {
		t.Errorf("Expected other=x, got %q", v)
	}
}

func TestFileClosed(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "s.msgpack"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.Close()
	if err := f.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if _, _, err := f.Get("k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestFileCorruptContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.msgpack")
	if err := os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Errorf("Expected decode error for corrupt store")
	}
}
