package testutil

import (
	"testing"
)

func TestValidConfig(t *testing.T) {
	cfg, err := ValidConfig()
	if err != nil {
		t.Fatalf("ValidConfig() error: %v", err)
	}

	if len(cfg.Ranges) != 2 {
		t.Errorf("len(Ranges) = %d, want 2", len(cfg.Ranges))
	}
	if len(cfg.Reserved) != 3 {
		t.Errorf("len(Reserved) = %d, want 3", len(cfg.Reserved))
	}
	if got := len(cfg.ValidPorts()); got != 1000+500-3 {
		t.Errorf("len(ValidPorts()) = %d, want %d", got, 1000+500-3)
	}
}

func TestInvalidConfig(t *testing.T) {
	if err := InvalidConfig(); err == nil {
		t.Error("Invalid config should fail validation")
	}
}

func TestSampleRegistry(t *testing.T) {
	data, err := SampleRegistry()
	if err != nil {
		t.Fatalf("SampleRegistry() error: %v", err)
	}

	if len(data.Projects) != 3 {
		t.Errorf("len(Projects) = %d, want 3", len(data.Projects))
	}
	if data.Projects["app2"].LinkedPort != 3010 {
		t.Errorf("app2 linked port = %d, want 3010", data.Projects["app2"].LinkedPort)
	}
	if data.Repositories["https://github.com/user/app2.git"] != 3010 {
		t.Error("Repositories should remember app2's linked port")
	}
}

func TestLoadFixture_NotFound(t *testing.T) {
	if _, err := LoadFixture("nonexistent.toml"); err == nil {
		t.Error("LoadFixture should fail for nonexistent file")
	}
}
