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

func TestDefault(t *testing.T) {
	d := Default("demo")
	assert.Equal(t, Descriptor{App: "demo", Location: Auto(), Format: JSON}, d)
	assert.Equal(t, Descriptor{App: "demo"}, d, "zero location and format are the defaults")
}

func TestDescriptor_PackageFunctions(t *testing.T) {
	dir := t.TempDir()
	d := Descriptor{App: "ignored", Location: Dir(dir), Format: YAML}

	p, err := d.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), p)

	_, err = Load[simpleCfg](d)
	assert.True(t, errors.Is(err, ErrNotFound))

	in := sampleSimple()
	require.NoError(t, Save(d, &in))
	out, err := Load[simpleCfg](d)
	require.NoError(t, err)
	assert.Equal(t, &in, out)

	require.NoError(t, d.Delete())
	_, err = os.Stat(p)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	require.NoError(t, d.Delete())
}

func TestDescriptor_Comparable(t *testing.T) {
	a := Descriptor{App: "x", Location: Dir("/a"), Format: TOML}
	b := Descriptor{App: "x", Location: Dir("/a"), Format: TOML}
	c := Descriptor{App: "x", Location: Path("/a"), Format: TOML}
	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestHostAppName(t *testing.T) {
	assert.NotEmpty(t, HostAppName())
}

func TestModuleAppName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"command-line-arguments", ""},
		{"github.com/acme/notes", "notes"},
		{"github.com/acme/notes/v3", "notes"},
		{"example.com/tool/cmd/vault", "vault"},
		{"v2", "v2"},
		{"github.com/acme/version", "version"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleAppName(tt.in))
		})
	}
}
