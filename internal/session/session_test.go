package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskpilot/internal/session"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func TestStore_SetAndGet(t *testing.T) {
	store := session.NewStore(storePath(t))

	if _, ok := store.Get(); ok {
		t.Error("empty store should have no token")
	}

	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	token, ok := store.Get()
	if !ok {
		t.Fatal("expected a stored token")
	}
	if token != "abc123" {
		t.Errorf("expected 'abc123', got %q", token)
	}
}

func TestStore_TokenFileMode(t *testing.T) {
	path := storePath(t)
	store := session.NewStore(path)

	if err := store.Set("secret"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestStore_ClearRemovesFile(t *testing.T) {
	path := storePath(t)
	store := session.NewStore(path)

	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("token file should be removed")
	}
	if _, ok := store.Get(); ok {
		t.Error("cleared store should have no token")
	}
}

func TestStore_ClearFiresHookOnce(t *testing.T) {
	store := session.NewStore(storePath(t))
	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	fired := 0
	store.NotifyClear(func() { fired++ })

	// A burst of rejections clears repeatedly; the hook must fire once.
	for i := 0; i < 3; i++ {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
	}

	if fired != 1 {
		t.Errorf("expected hook to fire once, fired %d times", fired)
	}
}

func TestStore_ClearWithoutTokenSkipsHook(t *testing.T) {
	store := session.NewStore(storePath(t))

	fired := 0
	store.NotifyClear(func() { fired++ })

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if fired != 0 {
		t.Errorf("hook should not fire when nothing was stored, fired %d times", fired)
	}
}

func TestStore_SetAfterClearResets(t *testing.T) {
	store := session.NewStore(storePath(t))
	if err := store.Set("first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	fired := 0
	store.NotifyClear(func() { fired++ })

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Set("second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	// A fresh login re-arms the hook.
	if fired != 2 {
		t.Errorf("expected hook to fire twice across two sessions, fired %d times", fired)
	}
}
