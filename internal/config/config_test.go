package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/system"
)

func TestParse(t *testing.T) {
	cfg, err := Parse("ranges = [[3000, 3999]]\nreserved = []")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Ranges, []PortRange{{3000, 3999}}) {
		t.Errorf("Ranges = %v", cfg.Ranges)
	}
	if len(cfg.Reserved) != 0 {
		t.Errorf("Reserved = %v, want empty", cfg.Reserved)
	}
	if cfg.LinkedPortMode != LinkModeProxy {
		t.Errorf("LinkedPortMode = %q, want %q", cfg.LinkedPortMode, LinkModeProxy)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Ranges, Default().Ranges) {
		t.Errorf("Ranges = %v, want defaults", cfg.Ranges)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty ranges", "ranges = []", "port ranges must not be empty"},
		{"inverted range", "ranges = [[3999, 3000]]", "at port range (3999-3000), start must be less than range end"},
		{"empty range", "ranges = [[3000, 3000]]", "start must be less than range end"},
		{"second range invalid", "ranges = [[3000, 3999], [5000, 4000]]", "at port range (5000-4000)"},
		{"zero start", "ranges = [[0, 10]]", "start must be a valid port"},
		{"three bounds", "ranges = [[1, 2, 3]]", "array of two ports"},
		{"port too large", "ranges = [[3000, 70000]]", "out of range"},
		{"bad mode", "linked_port_mode = \"tunnel\"", "linked_port_mode must be"},
		{"not toml", "ranges = [[", "failed to deserialize config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidPorts(t *testing.T) {
	cfg, err := Parse("ranges = [[3000, 3002], [4000, 4005]]\nreserved = [3001, 4000, 4004]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []uint16{3000, 3002, 4001, 4002, 4003, 4005}
	if got := cfg.ValidPorts(); !reflect.DeepEqual(got, want) {
		t.Errorf("ValidPorts() = %v, want %v", got, want)
	}
}

func TestValidPorts_OverlappingRanges(t *testing.T) {
	cfg := &Config{Ranges: []PortRange{{3000, 3003}, {3002, 3004}}}

	want := []uint16{3000, 3001, 3002, 3003, 3004}
	if got := cfg.ValidPorts(); !reflect.DeepEqual(got, want) {
		t.Errorf("ValidPorts() = %v, want %v", got, want)
	}
}

func TestValidPorts_TopOfRange(t *testing.T) {
	cfg := &Config{Ranges: []PortRange{{65534, 65535}}}

	want := []uint16{65534, 65535}
	if got := cfg.ValidPorts(); !reflect.DeepEqual(got, want) {
		t.Errorf("ValidPorts() = %v, want %v", got, want)
	}
}

func TestString(t *testing.T) {
	cfg, err := Parse("ranges = [[3000, 3999], [4500, 4999]]\nreserved = [3000, 3100, 3200]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "Allowed port ranges: 3000-3999 & 4500-4999\nReserved ports: 3000, 3100, 3200"
	if got := cfg.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDefaultConfigTemplate(t *testing.T) {
	cfg, err := Parse(DefaultConfigTemplate)
	if err != nil {
		t.Fatalf("DefaultConfigTemplate does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg.Ranges, Default().Ranges) {
		t.Errorf("Ranges = %v, want defaults", cfg.Ranges)
	}
}

func TestLoad(t *testing.T) {
	fsys := system.NewMockFS()
	paths := &Paths{ConfigPath: "/data/config.toml"}
	fsys.AddFile(paths.ConfigPath, []byte("ranges = [[4000, 4999]]\nlinked_port_mode = \"redirect\""))

	cfg, err := Load(fsys, paths)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Ranges[0] != (PortRange{4000, 4999}) {
		t.Errorf("Ranges = %v", cfg.Ranges)
	}
	if !cfg.RedirectLinkedPorts() {
		t.Error("RedirectLinkedPorts() = false, want true")
	}
}

func TestLoad_MissingDefault(t *testing.T) {
	cfg, err := Load(system.NewMockFS(), &Paths{ConfigPath: "/data/config.toml"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_MissingCustom(t *testing.T) {
	_, err := Load(system.NewMockFS(), &Paths{ConfigPath: "/custom/config.toml", CustomConfig: true})
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
	}
	if !strings.Contains(errors.GetHint(err), "PORTMAN_CONFIG") {
		t.Errorf("hint = %q", errors.GetHint(err))
	}
}

func TestLoad_Invalid(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/data/config.toml", []byte("ranges = []"))

	_, err := Load(fsys, &Paths{ConfigPath: "/data/config.toml"})
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
	}
}

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		vars    map[string]string
		wantDir string
	}{
		{"linux default", "linux", nil, "/home/user/.local/share/portman"},
		{"linux xdg", "linux", map[string]string{"XDG_DATA_HOME": "/xdg"}, "/xdg/portman"},
		{"linux relative xdg ignored", "linux", map[string]string{"XDG_DATA_HOME": "xdg"}, "/home/user/.local/share/portman"},
		{"darwin", "darwin", map[string]string{"XDG_DATA_HOME": "/xdg"}, "/home/user/Library/Application Support/com.canac.portman"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := system.NewMockEnv("/")
			for k, v := range tt.vars {
				env.Vars[k] = v
			}

			paths, err := ResolvePaths(env, tt.goos)
			if err != nil {
				t.Fatalf("ResolvePaths failed: %v", err)
			}
			if paths.DataDir != tt.wantDir {
				t.Errorf("DataDir = %q, want %q", paths.DataDir, tt.wantDir)
			}
			if paths.RegistryPath != filepath.Join(tt.wantDir, "registry.toml") {
				t.Errorf("RegistryPath = %q", paths.RegistryPath)
			}
			if paths.GalleryIndex != filepath.Join(tt.wantDir, "gallery_www", "index.html") {
				t.Errorf("GalleryIndex = %q", paths.GalleryIndex)
			}
			if paths.CustomConfig {
				t.Error("CustomConfig should be false without $PORTMAN_CONFIG")
			}
		})
	}
}

func TestResolvePaths_CustomConfig(t *testing.T) {
	env := system.NewMockEnv("/")
	env.Vars[ConfigEnvVar] = "/custom/portman.toml"

	paths, err := ResolvePaths(env, "linux")
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}
	if paths.ConfigPath != "/custom/portman.toml" || !paths.CustomConfig {
		t.Errorf("ConfigPath = %q, CustomConfig = %v", paths.ConfigPath, paths.CustomConfig)
	}
}

func TestRootCaddyfile(t *testing.T) {
	env := system.NewMockEnv("/")

	if _, err := RootCaddyfile(Default(), env); err == nil {
		t.Error("Expected error without $HOMEBREW_PREFIX")
	}

	env.Vars["HOMEBREW_PREFIX"] = "/homebrew"
	got, err := RootCaddyfile(Default(), env)
	if err != nil || got != "/homebrew/etc/Caddyfile" {
		t.Errorf("RootCaddyfile() = (%q, %v)", got, err)
	}

	cfg := Default()
	cfg.Caddyfile = "/etc/caddy/Caddyfile"
	if got, _ := RootCaddyfile(cfg, env); got != "/etc/caddy/Caddyfile" {
		t.Errorf("RootCaddyfile() = %q, want override", got)
	}
}
