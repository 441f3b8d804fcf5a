package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/portman/internal/allocator"
	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/system"
)

const sampleRegistry = `[projects]
  [projects.app1]
    port = 3001
  [projects.app2]
    port = 3002
    directory = "/projects/app2"
    linked_port = 3000

[repositories]
  "https://github.com/user/app2.git" = 3000
`

func TestEncodeDecode_RoundTrip(t *testing.T) {
	data := sampleData()

	content, err := Encode(data)
	require.NoError(t, err)

	decoded, err := Decode(content)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Encode(sampleData())
	require.NoError(t, err)
	second, err := Encode(sampleData())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.NotContains(t, string(first), "linked_port = 0")
}

func TestDecode(t *testing.T) {
	data, err := Decode([]byte(sampleRegistry))
	require.NoError(t, err)

	assert.Equal(t, Project{Port: 3001}, data.Projects["app1"])
	assert.Equal(t, Project{Port: 3002, Directory: "/projects/app2", LinkedPort: 3000}, data.Projects["app2"])
	assert.Equal(t, uint16(3000), data.Repositories["https://github.com/user/app2.git"])
}

func TestDecode_Empty(t *testing.T) {
	data, err := Decode(nil)
	require.NoError(t, err)
	assert.NotNil(t, data.Projects)
	assert.NotNil(t, data.Repositories)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[projects"},
		{"wrong type", "[projects.app1]\nport = \"3001\""},
		{"port overflow", "[projects.app1]\nport = 70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content))
			require.Error(t, err)
			assert.Equal(t, errors.ExitRegistryError, errors.GetExitCode(err))
		})
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(system.NewMockFS(), "/data/registry.toml")

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Projects)
}

func TestFileStore_SaveCreatesDirectories(t *testing.T) {
	fsys := system.NewMockFS()
	store := NewFileStore(fsys, "/data/deeply/nested/registry.toml")

	require.NoError(t, store.Save(sampleData()))
	assert.True(t, fsys.Exists("/data/deeply/nested"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleData(), loaded)
}

func TestFileStore_WriteError(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.WriteFileErr = assert.AnError
	store := NewFileStore(fsys, "/data/registry.toml")

	err := store.Save(sampleData())
	require.Error(t, err)
	assert.Equal(t, errors.ExitRegistryError, errors.GetExitCode(err))
}

func TestNew_FromFileStore(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/data/registry.toml", []byte(sampleRegistry))

	r, err := New(NewFileStore(fsys, "/data/registry.toml"), allocator.New(portRange(3000, 3999), nil))
	require.NoError(t, err)
	assert.False(t, r.Dirty())
	assert.Len(t, r.Projects(), 2)
}

func TestNew_MalformedFile(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/data/registry.toml", []byte("not = [valid"))

	_, err := New(NewFileStore(fsys, "/data/registry.toml"), allocator.New(portRange(3000, 3999), nil))
	require.Error(t, err)
	assert.Equal(t, errors.ExitRegistryError, errors.GetExitCode(err))
}
