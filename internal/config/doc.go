// Package config provides configuration types and loading for portman.
//
// # Configuration File
//
// The config file lives at <data dir>/config.toml, or wherever
// $PORTMAN_CONFIG points:
//
//	ranges = [[3000, 3999], [8000, 8099]]
//	reserved = [3306, 8080]
//	linked_port_mode = "proxy"   # or "redirect"
//	caddyfile = "/opt/homebrew/etc/Caddyfile"
//
// A missing file at the default location yields Default(). A missing file at
// a $PORTMAN_CONFIG location is an error.
//
// # Validation
//
// Config.Validate uses validator struct tags: at least one range, every range
// starting at a real port and ending after it, and a known linked port mode.
//
// # Paths
//
// Paths lays out the data directory:
//
//	registry.toml           persisted projects and repositories
//	Caddyfile               generated reverse proxy fragment
//	gallery_www/index.html  generated project gallery
package config
