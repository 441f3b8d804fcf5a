// Package repo identifies the git repository of a project directory by its
// origin remote URL. The URL is the key under which portman remembers the
// port a repository was last linked to.
package repo
