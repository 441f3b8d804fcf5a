package testutil

import (
	"embed"

	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/registry"
)

//go:embed fixtures/*.toml
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture loads and validates a config fixture.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(string(data))
}

// LoadRegistryFixture loads a registry document fixture.
func LoadRegistryFixture(name string) (*registry.Data, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return registry.Decode(data)
}

// ValidConfig returns the valid config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// InvalidConfig returns the error from parsing the invalid config fixture.
func InvalidConfig() error {
	_, err := LoadConfigFixture("invalid_config.toml")
	return err
}

// SampleRegistry returns the three-project registry fixture.
func SampleRegistry() (*registry.Data, error) {
	return LoadRegistryFixture("registry.toml")
}
