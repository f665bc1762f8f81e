package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePath(t *testing.T) {
	td := t.TempDir()
	existing := filepath.Join(td, "existing.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o600))
	blocker := filepath.Join(td, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
		wantDir string
	}{
		{name: "missing nested dirs are created", path: filepath.Join(td, "a", "b", "config.json"), wantDir: filepath.Join(td, "a", "b")},
		{name: "existing file is fine", path: existing},
		{name: "directory is rejected", path: td, wantErr: ErrInaccessiblePath},
		{name: "parent is a file", path: filepath.Join(blocker, "config.json"), wantErr: ErrInaccessiblePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsurePath(tt.path)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			if tt.wantDir != "" {
				info, err := os.Stat(tt.wantDir)
				require.NoError(t, err)
				assert.True(t, info.IsDir())
			}
		})
	}
}

func TestWriteFile_ReplacesContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, writeFile(p, []byte("name: first\ncount: 1\n")))
	require.NoError(t, writeFile(p, []byte("name: x\n")))

	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "name: x\n", string(got))

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFile_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := writeFile(dir, []byte("{}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, ErrInaccessiblePath))
}

func TestReadFile(t *testing.T) {
	td := t.TempDir()

	_, err := readFile(filepath.Join(td, "missing", "config.json"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = readFile(td)
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
	assert.False(t, errors.Is(err, ErrNotFound))

	p := filepath.Join(td, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"a":1}`), 0o600))
	data, err := readFile(p)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestRemoveFile(t *testing.T) {
	td := t.TempDir()
	p := filepath.Join(td, "config.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o600))

	removed, err := removeFile(p)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = removeFile(p)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = removeFile(td)
	assert.False(t, removed)
	assert.True(t, errors.Is(err, ErrIO))
	_, statErr := os.Stat(td)
	assert.NoError(t, statErr)
}

func TestRemoveDirIfEmpty(t *testing.T) {
	td := t.TempDir()
	empty := filepath.Join(td, "empty")
	full := filepath.Join(td, "full")
	require.NoError(t, os.Mkdir(empty, 0o700))
	require.NoError(t, os.Mkdir(full, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(full, "keep"), nil, 0o600))

	require.NoError(t, removeDirIfEmpty(empty))
	require.NoError(t, removeDirIfEmpty(full))
	require.NoError(t, removeDirIfEmpty(filepath.Join(td, "missing")))

	_, err := os.Stat(empty)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = os.Stat(full)
	assert.NoError(t, err)
}
