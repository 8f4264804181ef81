package response

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeakTKError(t *testing.T) {
	e := &LeakTKError{
		Fatal:   false,
		Code:    1,
		Message: "test error message",
	}
	t.Run("non fatal output", func(t *testing.T) {
		assert.Equal(t, "error occurred, code 1 (ReadError): test error message", e.String())
	})

	e.Fatal = true
	t.Run("fatal output", func(t *testing.T) {
		assert.Equal(t, "fatal error occurred, code 1 (ReadError): test error message", e.Error())
	})

	t.Run("unknown code", func(t *testing.T) {
		assert.Equal(t, "UnknownError", ErrorCode(42).String())
	})

	t.Run("unwrap", func(t *testing.T) {
		err := NewError(true, ReadError, &fs.PathError{Op: "open", Path: "a", Err: fs.ErrPermission})
		assert.True(t, errors.Is(err, fs.ErrPermission))

		var leakTKErr *LeakTKError
		assert.True(t, errors.As(error(err), &leakTKErr))
		assert.Equal(t, ReadError, leakTKErr.Code)
	})
}
