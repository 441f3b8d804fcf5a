package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		log       func()
		want      string
		wantFound bool
	}{
		{"debug hidden by default", false, func() { Debug("reassigned port", "project", "app1") }, "reassigned port", false},
		{"debug shown when verbose", true, func() { Debug("reassigned port", "project", "app1") }, "reassigned port", true},
		{"info", false, func() { Info("loaded registry", "projects", 3) }, "loaded registry", true},
		{"warn", false, func() { Warn("cleared duplicate directory", "project", "app2") }, "cleared duplicate directory", true},
		{"error", false, func() { Error("caddy reload failed") }, "caddy reload failed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.verbose, false, &buf)

			if Verbose != tt.verbose {
				t.Errorf("Verbose = %v, want %v", Verbose, tt.verbose)
			}

			tt.log()
			if got := strings.Contains(buf.String(), tt.want); got != tt.wantFound {
				t.Errorf("output %q: contains %q = %v, want %v", buf.String(), tt.want, got, tt.wantFound)
			}
		})
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("saved registry", "projects", 2)

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"projects":2`) {
		t.Errorf("Expected attributes in output, got: %s", output)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	With("component", "caddy").Info("reloaded")

	output := buf.String()
	if !strings.Contains(output, "reloaded") || !strings.Contains(output, "component=caddy") {
		t.Errorf("Expected message with attributes, got: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(nil, nil)

	UserSuccess("Created project %s", "app1")
	UserInfo("listing %d projects", 2)
	UserWarning("couldn't reload Caddy config")
	UserError("project %s does not exist", "app2")
	UserHint("Try providing an explicit port.")
	UserHint("")

	if !strings.Contains(out.String(), "Created project app1") {
		t.Errorf("stdout missing success message: %q", out.String())
	}
	if !strings.Contains(out.String(), "listing 2 projects") {
		t.Errorf("stdout missing info message: %q", out.String())
	}
	for _, want := range []string{"couldn't reload Caddy config", "project app2 does not exist", "Try providing an explicit port."} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q: %q", want, errOut.String())
		}
	}
	if strings.Count(errOut.String(), "\n") != 3 {
		t.Errorf("empty hint should print nothing, got %q", errOut.String())
	}
}
