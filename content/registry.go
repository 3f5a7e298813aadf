// ABOUTME: Registry holds the active slot manifest and supports hot-swapping it.
// ABOUTME: Watch reloads a manifest file on change via fsnotify for quick iteration on copy.

package content

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Registry is the shared handle to the active manifest. Pages read it on
// every request so a manifest swap takes effect immediately.
type Registry struct {
	mu sync.RWMutex
	m  *Manifest
}

// NewRegistry creates a Registry serving the given manifest.
func NewRegistry(m *Manifest) *Registry {
	return &Registry{m: m}
}

// Manifest returns the active manifest.
func (r *Registry) Manifest() *Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m
}

// Swap replaces the active manifest.
func (r *Registry) Swap(m *Manifest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = m
}

// Watch reloads the manifest from path whenever the file changes and swaps it
// into the registry. A manifest that fails to parse is logged and the
// previous one stays active. Returns a stop function that closes the watcher.
func (r *Registry) Watch(path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, not the file: editors that write via rename
	// replace the inode and a file watch would go stale.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				m, err := LoadManifestFile(path)
				if err != nil {
					log.Printf("content reload failed path=%s err=%v", path, err)
					continue
				}
				r.Swap(m)
				log.Printf("content reloaded path=%s slots=%d", path, m.Len())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("content watcher error=%v", err)
			}
		}
	}()

	return func() {
		watcher.Close()
	}, nil
}
