// Package pipeline ties the diagram conversion stages together: engine
// resolution, option extraction, cache lookup, compilation, format
// negotiation, and figure construction.
//
// The pipeline processes blocks one at a time in document order. The only
// state shared across blocks is the engine registry (append-only, with
// memoized negative lookups) and the cache (content-addressed, whole-file
// writes), so interrupted runs never corrupt later ones.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger, cfg)
//	assets := pipeline.NewMemStore()
//	fig, err := runner.ProcessBlock(ctx, block, "html", assets)
//	switch {
//	case err != nil:
//	    // fail-fast policy aborted the run
//	case fig == nil:
//	    // not a diagram (or failed under the warn policy): keep the block
//	default:
//	    // replace the block with fig; bytes are in assets
//	}
package pipeline

import (
	"fmt"
	"sync"
)

// Asset is a named binary artifact produced by the pipeline.
type Asset struct {
	Name     string
	MIMEType string
	Data     []byte
}

// AssetStore receives the rendered images for embedding. The host document
// model supplies its own implementation; [MemStore] serves the CLI and the
// HTTP service.
type AssetStore interface {
	// Register stores the bytes under name. Registering the same name
	// twice must be idempotent for identical content.
	Register(name, mimeType string, data []byte) error
}

// MemStore is an in-memory AssetStore preserving registration order.
type MemStore struct {
	mu      sync.Mutex
	order   []string
	entries map[string]Asset
}

// NewMemStore creates an empty in-memory asset store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]Asset)}
}

// Register stores an asset. Re-registering a name with different content is
// an error; content-hashed names make that a corruption signal, not a normal
// occurrence.
func (s *MemStore) Register(name, mimeType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[name]; ok {
		if existing.MIMEType != mimeType || len(existing.Data) != len(data) {
			return fmt.Errorf("asset %s already registered with different content", name)
		}
		return nil
	}
	s.entries[name] = Asset{Name: name, MIMEType: mimeType, Data: data}
	s.order = append(s.order, name)
	return nil
}

// Get returns the asset registered under name.
func (s *MemStore) Get(name string) (Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.entries[name]
	return a, ok
}

// Names returns asset names in registration order.
func (s *MemStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of registered assets.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Ensure MemStore implements AssetStore.
var _ AssetStore = (*MemStore)(nil)
