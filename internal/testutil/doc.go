// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// TOML fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml
//	fixtures/registry.toml
//
// Helper functions load and parse them:
//
//	cfg, err := testutil.ValidConfig()
//	err := testutil.InvalidConfig()
//	data, err := testutil.SampleRegistry()
//
// # Test Environment
//
// NewTestEnv installs an app.App backed by in-memory fakes as app.Default,
// so commands can be run without touching the real file system:
//
//	func TestList(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.UseSampleRegistry()
//
//	    // run the command, then inspect env.Registry() and env.Executor
//	}
//
// The default app is restored when the test finishes.
package testutil
