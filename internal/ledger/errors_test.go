package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	withDetails := newValidation("rate per item must be positive", "received value: -5")
	assert.Equal(t, "rate per item must be positive: received value: -5", withDetails.Error())

	withoutDetails := newConfiguration("no configuration found", "")
	assert.Equal(t, "no configuration found", withoutDetails.Error())
}

func TestErrorKinds(t *testing.T) {
	validation := newValidation("bad input", "")
	configuration := newConfiguration("no configuration found", "")
	storage := wrapStorage(errors.New("disk I/O error"), "failed to save transaction")

	assert.True(t, IsValidation(validation))
	assert.False(t, IsConfiguration(validation))
	assert.False(t, IsStorage(validation))

	assert.True(t, IsConfiguration(configuration))
	assert.True(t, IsStorage(storage))

	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("command failed: %w", newValidation("bad input", ""))
	assert.True(t, IsValidation(err))
}

func TestWrapStorage(t *testing.T) {
	t.Run("keeps the cause", func(t *testing.T) {
		cause := errors.New("disk I/O error")
		err := wrapStorage(cause, "failed to save transaction")
		assert.ErrorIs(t, err, cause)
		assert.False(t, err.Transient)
		assert.Equal(t, "failed to save transaction", err.Message)
		assert.Equal(t, "disk I/O error", err.Details)
	})

	t.Run("marks a locked database as transient", func(t *testing.T) {
		err := wrapStorage(errors.New("database is locked"), "failed to save transaction")
		require.True(t, err.Transient)
		assert.Equal(t, "database is locked by another process", err.Message)
	})
}
