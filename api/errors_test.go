package api_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-poll/api"
)

func TestError_isMatchesByCode(t *testing.T) {
	err := api.NewError(api.ErrCodeOutOfMemory, "grow failed").WithContext("capacity", 10)
	assert.ErrorIs(t, err, api.ErrOutOfMemory)
	assert.NotErrorIs(t, err, api.ErrIOFailure)

	wrapped := fmt.Errorf("attach: %w", err)
	assert.ErrorIs(t, wrapped, api.ErrOutOfMemory)

	var target *api.Error
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, api.ErrCodeOutOfMemory, target.Code)
	assert.Equal(t, 10, target.Context["capacity"])
}

func TestError_wrapKeepsCause(t *testing.T) {
	cause := errors.New("EBADF")
	err := api.ErrIOFailure.Wrap(cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, api.ErrIOFailure)
	assert.Equal(t, "wait for readiness failed: EBADF", err.Error())
	assert.Nil(t, api.ErrIOFailure.Cause, "sentinel mutated")
}

func TestError_withContextCopies(t *testing.T) {
	a := api.ErrAlreadyAttached.WithContext("fd", 3)
	b := a.WithContext("ctx", "second")

	assert.Empty(t, api.ErrAlreadyAttached.Context)
	assert.Len(t, a.Context, 1)
	assert.Len(t, b.Context, 2)
	assert.Contains(t, b.Error(), "already attached")
	assert.Contains(t, b.Error(), "fd:3")
}

func TestErrorCode_String(t *testing.T) {
	for code, want := range map[api.ErrorCode]string{
		api.ErrCodeOK:              "ok",
		api.ErrCodeInvalidArgument: "invalid argument",
		api.ErrCodeOutOfMemory:     "out of memory",
		api.ErrCodeAlreadyAttached: "already attached",
		api.ErrCodeIOFailure:       "i/o failure",
		api.ErrCodeNotSupported:    "not supported",
		api.ErrCodeReentrant:       "reentrant call",
		api.ErrorCode(99):          "code(99)",
	} {
		assert.Equal(t, want, code.String())
	}
}
