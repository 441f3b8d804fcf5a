// Package registry stores the projects managed by portman and the ports
// assigned to them.
//
// A Registry is built once per command from the persisted document and a
// port allocator. Construction reconciles the stored state with the current
// configuration:
//
//   - duplicate linked ports and directories are cleared
//   - linked ports are removed from the allocator pool
//   - project ports that are no longer available are reassigned
//
// The registry is marked dirty when anything changes, and Save only writes
// (and reloads Caddy) when it is dirty.
//
// Project names are DNS-label slugs: lowercase letters, digits, and single
// dashes, at most 63 characters.
package registry
