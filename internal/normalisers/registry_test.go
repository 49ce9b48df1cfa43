package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
)

// stubNormaliser claims a set of MIME types with a priority.
type stubNormaliser struct {
	name      string
	mimeTypes []string
	priority  int
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.mimeTypes }
func (s *stubNormaliser) Priority() int                { return s.priority }

func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Title: s.name, Text: string(raw.Content)}, nil
}

func TestRegistry_ForMIMEType(t *testing.T) {
	r := NewRegistry()
	text := &stubNormaliser{name: "text", mimeTypes: []string{"text/plain"}, priority: 5}
	r.Register(text)

	got, err := r.ForMIMEType("text/plain")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(text), got)
}

func TestRegistry_UnknownMIMEType(t *testing.T) {
	r := NewRegistry()

	_, err := r.ForMIMEType("application/zip")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_HigherPriorityWins(t *testing.T) {
	r := NewRegistry()
	fallback := &stubNormaliser{name: "fallback", mimeTypes: []string{"text/plain"}, priority: 5}
	better := &stubNormaliser{name: "better", mimeTypes: []string{"text/plain"}, priority: 50}

	r.Register(fallback)
	r.Register(better)

	got, err := r.ForMIMEType("text/plain")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(better), got)

	// Registration order does not matter
	r2 := NewRegistry()
	r2.Register(better)
	r2.Register(fallback)

	got, err = r2.ForMIMEType("text/plain")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(better), got)
}

func TestRegistry_EqualPriorityKeepsFirst(t *testing.T) {
	r := NewRegistry()
	first := &stubNormaliser{name: "first", mimeTypes: []string{"text/plain"}, priority: 10}
	second := &stubNormaliser{name: "second", mimeTypes: []string{"text/plain"}, priority: 10}

	r.Register(first)
	r.Register(second)

	got, err := r.ForMIMEType("text/plain")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(first), got)
}

func TestRegistry_MultipleMIMETypes(t *testing.T) {
	r := NewRegistry()
	n := &stubNormaliser{name: "multi", mimeTypes: []string{"text/plain", "text/markdown"}, priority: 5}
	r.Register(n)

	for _, mt := range n.mimeTypes {
		got, err := r.ForMIMEType(mt)
		require.NoError(t, err)
		assert.Same(t, driven.Normaliser(n), got)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "report"},
		{"annual_report_2024.pdf", "annual report 2024"},
		{"meeting-notes.md", "meeting notes"},
		{"/tmp/uploads/guide.txt", "guide"},
		{"no_extension", "no extension"},
		{"trailing-.txt", "trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromFilename(tt.filename))
		})
	}
}
