package hierarchy

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type snapshot struct {
	index    *Index
	version  string
	loadedAt time.Time
}

// Provider holds the current hierarchy snapshot. Replace swaps the whole
// snapshot atomically; readers always see a complete, internally consistent
// index and never block.
type Provider struct {
	current atomic.Pointer[snapshot]
}

// NewProvider returns a Provider with no snapshot loaded
func NewProvider() *Provider {
	return &Provider{}
}

// Current returns the active index, or nil when no snapshot has been loaded yet
func (p *Provider) Current() *Index {
	s := p.current.Load()
	if s == nil {
		return nil
	}
	return s.index
}

// Version returns the opaque version id of the active snapshot
func (p *Provider) Version() string {
	s := p.current.Load()
	if s == nil {
		return ""
	}
	return s.version
}

// LoadedAt returns when the active snapshot was installed
func (p *Provider) LoadedAt() time.Time {
	s := p.current.Load()
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Replace installs a new snapshot and returns its version id
func (p *Provider) Replace(idx *Index) string {
	s := &snapshot{
		index:    idx,
		version:  uuid.NewString(),
		loadedAt: time.Now(),
	}
	p.current.Store(s)
	return s.version
}
