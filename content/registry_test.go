// ABOUTME: Test suite for the manifest registry and file watcher.
// ABOUTME: Covers swap semantics and live reload of a manifest file on disk.

package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRegistrySwapReplacesManifest(t *testing.T) {
	m1, err := ParseManifest([]byte(validManifest))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}

	reg := NewRegistry(m1)
	if reg.Manifest().Len() != 2 {
		t.Fatalf("expected 2 slots, got %d", reg.Manifest().Len())
	}

	m2, err := ParseManifest([]byte(`
slots:
  - key: hero_title
    kind: text
    default: Swapped
`))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}

	reg.Swap(m2)
	slot, _ := reg.Manifest().Slot("hero_title")
	if slot.Default != "Swapped" {
		t.Fatalf("expected swapped manifest, got %q", slot.Default)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := LoadManifestFile(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	reg := NewRegistry(m)

	stop, err := reg.Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	updated := `
slots:
  - key: hero_title
    kind: text
    default: Reloaded
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite manifest: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		slot, _ := reg.Manifest().Slot("hero_title")
		if slot.Default == "Reloaded" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("manifest was not reloaded within deadline")
}

func TestWatchKeepsOldManifestOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := LoadManifestFile(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	reg := NewRegistry(m)

	stop, err := reg.Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("slots: ["), 0o644); err != nil {
		t.Fatalf("rewrite manifest: %v", err)
	}

	// Give the watcher time to see the write, then confirm the old
	// manifest is still active.
	time.Sleep(300 * time.Millisecond)
	if reg.Manifest().Len() != 2 {
		t.Fatalf("broken manifest replaced the active one, slots=%d", reg.Manifest().Len())
	}
}
