package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrBadPattern, "invalid search pattern")

	assert.Equal(t, "[BAD_PATTERN] invalid search pattern", err.Error())
	assert.Equal(t, ErrBadPattern, GetErrorCode(err))
}

func TestNewf(t *testing.T) {
	err := Newf(ErrNotADir, "%q is not a directory", "/etc/passwd")
	assert.Contains(t, err.Error(), `"/etc/passwd" is not a directory`)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, ErrInvalidRoot, "could not find directory")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INVALID_ROOT")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nothing %d", 1))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(ErrRelativePath, "one")
	target := New(ErrRelativePath, "another message entirely")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrWrite, "other code")))
}

func TestIsErrorCode(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), ErrConfigParse, "bad config")

	assert.True(t, IsErrorCode(err, ErrConfigParse))
	assert.False(t, IsErrorCode(err, ErrConfigLoad))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrConfigParse))
}

func TestGetErrorCodeFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain error")))
}
