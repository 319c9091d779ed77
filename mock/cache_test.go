package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCache_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where DocumentCache is expected
	var _ encounter.DocumentCache = &mock.DocumentCache{}
}

func TestDocumentCache_PutDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to PutDocumentFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *encounter.TraditionDocument
		c := &mock.DocumentCache{
			PutDocumentFn: func(_ context.Context, doc *encounter.TraditionDocument) error {
				calledWith = doc
				return nil
			},
		}

		doc := &encounter.TraditionDocument{
			Slug:        "norse",
			Description: "<p>Northern finds.</p>",
		}

		err := c.PutDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, doc, calledWith)
	})
}
