package snapshot

import (
	"context"
	"sync"
)

// MemoryPersister keeps the snapshot in process memory. Nothing survives a
// restart; it backs tests and throwaway instances.
type MemoryPersister struct {
	mu   sync.RWMutex
	blob []byte
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(ctx context.Context) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), p.blob...), nil
}

func (p *MemoryPersister) Save(ctx context.Context, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blob = append([]byte(nil), blob...)
	return nil
}

func (p *MemoryPersister) Close() error {
	return nil
}
