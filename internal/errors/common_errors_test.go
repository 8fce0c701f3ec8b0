package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewNotFoundError("dataset student_attendance.csv"),
			expected: "[NOT_FOUND] dataset student_attendance.csv not found",
		},
		{
			name:     "with cause",
			err:      NewStorageError("failed to write chart", fmt.Errorf("disk full")),
			expected: "[STORAGE] failed to write chart: disk full",
		},
		{
			name:     "validation",
			err:      NewAppValidationError("missing column Status"),
			expected: "[VALIDATION] missing column Status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewParsingError("failed to read csv", os.ErrNotExist)
	wrapped := fmt.Errorf("load: %w", err)

	assert.True(t, errors.Is(wrapped, os.ErrNotExist))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewRenderError("failed to save heatmap", nil).
		WithContext("path", "outputs/attendance_heatmap.png").
		WithContext("rows", 20)

	assert.Equal(t, "outputs/attendance_heatmap.png", err.Context["path"])
	assert.Equal(t, 20, err.Context["rows"])

	bare := &AppError{Type: ErrTypeConfig}
	bare.WithContext("key", "value")
	assert.Equal(t, "value", bare.Context["key"])
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("analyze: %w", NewNotFoundError("input"))

	assert.True(t, IsType(err, ErrTypeNotFound))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeNotFound))
	assert.False(t, IsType(nil, ErrTypeNotFound))
}
