package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("uid is required")))
	assert.Equal(t, KindDuplicateKey, KindOf(DuplicateKey("uid", nil)))
	assert.Equal(t, KindNotFound, KindOf(NotFound("user", nil)))
	assert.Equal(t, KindInvalidCredentials, KindOf(InvalidCredentials(nil)))
	assert.Equal(t, KindPersistence, KindOf(Persistence(nil)))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", NotFound("user", nil))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("index violation")
	err := DuplicateKey("uid", cause)

	assert.Contains(t, err.Error(), "uid already exists")
	assert.Contains(t, err.Error(), "index violation")
	assert.ErrorIs(t, err, cause)
}
