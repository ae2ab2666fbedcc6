package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Typed(t *testing.T) {
	assert.Equal(t, KindBadRequest, KindOf(NewBadRequest("nope")))
	assert.Equal(t, KindNotFound, KindOf(NewNotFound("missing")))
	assert.Equal(t, KindUnauthorized, KindOf(NewUnauthorized()))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("login: %w", NewUnauthorized())
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestKindOf_Untyped(t *testing.T) {
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnexpected, KindOf(ErrNotFound))
}

func TestErrorMessage(t *testing.T) {
	err := NewBadRequest("incorrect email or password")
	assert.EqualError(t, err, "incorrect email or password")
}
