package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistence_WrapsOnlyUnclassified(t *testing.T) {
	raw := errors.New("connection reset")
	wrapped := Persistence(raw)
	assert.ErrorIs(t, wrapped, ErrPersistence)

	notFound := fmt.Errorf("%w: cart not found", ErrNotFound)
	assert.Same(t, notFound, Persistence(notFound))
	assert.NoError(t, Persistence(nil))
}

func TestValidation_Message(t *testing.T) {
	err := Validation("quantity must be >= %d", 1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: quantity must be >= 1", err.Error())
}
