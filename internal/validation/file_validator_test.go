package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
)

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "student_attendance.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Student_ID\n"), 0644))

	v := NewFileValidator(nil)

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"existing file", csvPath, ""},
		{"missing file", filepath.Join(dir, "nope.csv"), apperrors.ErrTypeNotFound},
		{"directory", dir, apperrors.ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	out := filepath.Join(t.TempDir(), "outputs", "charts")
	require.NoError(t, v.ValidateOutputDirectory(out))
	assert.DirExists(t, out)
	assert.NoFileExists(t, filepath.Join(out, ".write_test"))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err := v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.png"), 0755))

	n, err := NewFileValidator(nil).CountFiles(dir, "*.png")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
