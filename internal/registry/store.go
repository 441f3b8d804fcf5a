package registry

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/system"
)

// Store loads and saves the persisted registry document.
type Store interface {
	Load() (*Data, error)
	Save(data *Data) error
}

// FileStore keeps the registry in a TOML file.
type FileStore struct {
	fs   system.FileSystem
	path string
}

// NewFileStore creates a store for the registry file at path.
func NewFileStore(fsys system.FileSystem, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

// Path returns the location of the registry file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the registry file. A missing file is an empty registry.
func (s *FileStore) Load() (*Data, error) {
	content, found, err := system.ReadFileIfExists(s.fs, s.path)
	if err != nil {
		return nil, errors.RegistryError("failed to read registry", err)
	}
	if !found {
		return NewData(), nil
	}
	return Decode(content)
}

// Save writes the registry file, creating its directory if needed.
func (s *FileStore) Save(data *Data) error {
	content, err := Encode(data)
	if err != nil {
		return err
	}
	if err := system.WriteFileAll(s.fs, s.path, content); err != nil {
		return errors.RegistryError("failed to write registry", err)
	}
	return nil
}

// Decode parses a registry document.
func Decode(content []byte) (*Data, error) {
	data := NewData()
	if _, err := toml.Decode(string(content), data); err != nil {
		return nil, errors.RegistryError("failed to deserialize registry", err)
	}
	if data.Projects == nil {
		data.Projects = make(map[string]Project)
	}
	if data.Repositories == nil {
		data.Repositories = make(map[string]uint16)
	}
	return data, nil
}

// Encode serializes a registry document. Keys are written in sorted order,
// so equal documents always encode identically.
func Encode(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, errors.RegistryError("failed to serialize registry", err)
	}
	return buf.Bytes(), nil
}

// MemoryStore keeps the registry document in memory.
type MemoryStore struct {
	Data  *Data
	Saves int
	// SaveErr is returned by Save when set
	SaveErr error
}

// NewMemoryStore creates a store preloaded with data. A nil data is an empty registry.
func NewMemoryStore(data *Data) *MemoryStore {
	if data == nil {
		data = NewData()
	}
	return &MemoryStore{Data: data}
}

func (s *MemoryStore) Load() (*Data, error) {
	return s.Data.clone(), nil
}

func (s *MemoryStore) Save(data *Data) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Data = data.clone()
	s.Saves++
	return nil
}

func (d *Data) clone() *Data {
	c := NewData()
	for name, p := range d.Projects {
		c.Projects[name] = p
	}
	for repo, port := range d.Repositories {
		c.Repositories[repo] = port
	}
	return c
}
