package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewStructuralMissError("no row contains 국적"),
			want: "[STRUCTURAL_MISS] no row contains 국적",
		},
		{
			name: "with cause",
			err:  NewParsingError("failed to read grid", fmt.Errorf("bad quote")),
			want: "[PARSING] failed to read grid: bad quote",
		},
		{
			name: "not found",
			err:  NewNotFoundError("column Japan"),
			want: "[NOT_FOUND] column Japan not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_UnwrapAndType(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("persist inbound: %w", NewStorageError("write failed", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrTypeStorage, TypeOf(err))
	assert.True(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(err, ErrTypeParsing))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewEmptyResultError("no partial tables").
		WithContext("domain", "inbound").
		WithContext("files", 3)

	require.Len(t, err.Context, 2)
	assert.Equal(t, "inbound", err.Context["domain"])
	assert.Equal(t, 3, err.Context["files"])

	bare := &AppError{Type: ErrTypeConfig, Message: "x"}
	bare.WithContext("k", "v")
	assert.Equal(t, "v", bare.Context["k"])
}

func TestConstructorsSetTypes(t *testing.T) {
	assert.Equal(t, ErrTypeValidation, NewAppValidationError("bad").Type)
	assert.Equal(t, ErrTypeConfig, NewConfigError("bad", nil).Type)
	assert.Equal(t, ErrTypeEmptyResult, NewEmptyResultError("none").Type)
}
