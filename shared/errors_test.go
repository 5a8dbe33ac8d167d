package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongeng-kita/dongeng_api/shared"
)

func TestGetAppError(t *testing.T) {
	t.Run("direct app error", func(t *testing.T) {
		err := shared.ErrNoRecordsFound()
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("loading records: %w", shared.ErrInvalidTimeUnit("day"))
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "day", appErr.Data)
	})

	t.Run("plain error is not an app error", func(t *testing.T) {
		_, ok := shared.GetAppError(errors.New("boom"))
		assert.False(t, ok)
	})
}

func TestIsGoodOutcome(t *testing.T) {
	assert.True(t, shared.IsGoodOutcome("baik"))
	assert.True(t, shared.IsGoodOutcome("good"))
	assert.False(t, shared.IsGoodOutcome("buruk"))
	assert.False(t, shared.IsGoodOutcome("bad"))
	assert.False(t, shared.IsGoodOutcome(""))
	// Matching is exact, not case folded.
	assert.False(t, shared.IsGoodOutcome("Baik"))
}
