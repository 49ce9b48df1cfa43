package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Equal(t, []string{"application/pdf"}, n.SupportedMIMETypes())
	assert.Greater(t, n.Priority(), 0)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestNormalise_NotAPDF(t *testing.T) {
	_, err := New().Normalise(context.Background(), &domain.RawDocument{
		Filename: "fake.pdf",
		MIMEType: "application/pdf",
		Content:  []byte("this is not a pdf"),
	})
	assert.Error(t, err)
}
