package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreWrapsOnlyUnclassifiedErrors(t *testing.T) {
	assert.NoError(t, Store("insert", nil))

	wrapped := Store("insert", context.DeadlineExceeded)
	var storeErr *StoreError
	require.ErrorAs(t, wrapped, &storeErr)
	assert.Equal(t, "insert", storeErr.Op)
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)

	notFound := fmt.Errorf("lookup: %w", NotFound("Transaction"))
	assert.Same(t, notFound, Store("update", notFound))
}

func TestAuthenticationErrorReason(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := fmt.Errorf("validate: %w", Authentication(Malformed, cause))

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, Malformed, authErr.Reason)
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Details: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "amount", Message: "must be a positive number"},
	}}
	assert.Equal(t, "validation failed: title: is required; amount: must be a positive number", err.Error())
	assert.True(t, Classified(err))
	assert.False(t, Classified(errors.New("boom")))
}
