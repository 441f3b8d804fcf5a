package config

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/portman/internal/system"
)

const (
	appName        = "portman"
	darwinBundleID = "com.canac.portman"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "PORTMAN_CONFIG"
)

// Paths holds the resolved file locations
type Paths struct {
	DataDir       string
	ConfigPath    string
	CustomConfig  bool // ConfigPath came from $PORTMAN_CONFIG
	RegistryPath  string
	CaddyfilePath string // Generated Caddyfile fragment imported by the root Caddyfile
	GalleryDir    string
	GalleryIndex  string
}

// NewPaths lays out all portman files inside dataDir.
func NewPaths(dataDir string) (*Paths, error) {
	join := func(parts ...string) (string, error) {
		p, err := securejoin.SecureJoin(dataDir, filepath.Join(parts...))
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s in data directory: %w", filepath.Join(parts...), err)
		}
		return p, nil
	}

	p := &Paths{DataDir: dataDir}
	var err error
	if p.ConfigPath, err = join("config.toml"); err != nil {
		return nil, err
	}
	if p.RegistryPath, err = join("registry.toml"); err != nil {
		return nil, err
	}
	if p.CaddyfilePath, err = join("Caddyfile"); err != nil {
		return nil, err
	}
	if p.GalleryDir, err = join("gallery_www"); err != nil {
		return nil, err
	}
	if p.GalleryIndex, err = join("gallery_www", "index.html"); err != nil {
		return nil, err
	}
	return p, nil
}

// ResolvePaths determines the data directory for the given OS and applies the
// $PORTMAN_CONFIG override.
func ResolvePaths(env system.Environment, goos string) (*Paths, error) {
	dataDir, err := DataDir(env, goos)
	if err != nil {
		return nil, err
	}

	paths, err := NewPaths(dataDir)
	if err != nil {
		return nil, err
	}

	if custom, ok := env.LookupEnv(ConfigEnvVar); ok && custom != "" {
		paths.ConfigPath = custom
		paths.CustomConfig = true
	}
	return paths, nil
}

// DataDir returns the local data directory for portman.
func DataDir(env system.Environment, goos string) (string, error) {
	if goos != "darwin" {
		if xdg, ok := env.LookupEnv("XDG_DATA_HOME"); ok && filepath.IsAbs(xdg) {
			return filepath.Join(xdg, appName), nil
		}
	}

	home, err := env.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine application directories: %w", err)
	}

	if goos == "darwin" {
		return filepath.Join(home, "Library", "Application Support", darwinBundleID), nil
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// RootCaddyfile returns the externally-owned Caddyfile that imports portman's
// generated fragment: the config override, or $HOMEBREW_PREFIX/etc/Caddyfile.
func RootCaddyfile(cfg *Config, env system.Environment) (string, error) {
	if cfg != nil && cfg.Caddyfile != "" {
		return cfg.Caddyfile, nil
	}
	prefix, err := system.RequireEnv(env, "HOMEBREW_PREFIX")
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "etc", "Caddyfile"), nil
}
