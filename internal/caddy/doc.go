// Package caddy keeps the Caddy reverse proxy in sync with the registry.
//
// portman owns a generated Caddyfile fragment in its data directory and a
// static gallery page listing the projects. The root Caddyfile is owned by
// the user; portman only prepends a single import line for the fragment.
package caddy
