package normalisers

import (
	"fmt"
	"sync"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps MIME types to normalisers. When several normalisers
// claim a MIME type the highest priority wins.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for its supported MIME types.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mt := range n.SupportedMIMETypes() {
		existing, ok := r.byMIME[mt]
		if ok && existing.Priority() >= n.Priority() {
			continue
		}
		r.byMIME[mt] = n
	}
}

// ForMIMEType returns the normaliser registered for the MIME type.
func (r *Registry) ForMIMEType(mimeType string) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byMIME[mimeType]
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedType, mimeType)
	}
	return n, nil
}
