package registry

import (
	"fmt"
	"strings"
)

// Project is a named development workspace with an assigned port. Zero
// values mean "none" for Directory and LinkedPort.
type Project struct {
	Port       uint16 `toml:"port"`
	Directory  string `toml:"directory,omitempty"`
	LinkedPort uint16 `toml:"linked_port,omitzero"`
}

// NamedProject pairs a project with its registry key.
type NamedProject struct {
	Name string
	Project
}

// String renders the project on one line, e.g. "app1 :3001 -> :3000 (/projects/app1)".
func (p NamedProject) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s :%d", p.Name, p.Port)
	if p.LinkedPort != 0 {
		fmt.Fprintf(&sb, " -> :%d", p.LinkedPort)
	}
	if p.Directory != "" {
		fmt.Fprintf(&sb, " (%s)", p.Directory)
	}
	return sb.String()
}

// RepoPort is a remembered repository to linked port association.
type RepoPort struct {
	Repo string
	Port uint16
}

func (r RepoPort) String() string {
	return fmt.Sprintf("%s :%d", r.Repo, r.Port)
}

// Data is the persisted registry document.
type Data struct {
	Projects     map[string]Project `toml:"projects"`
	Repositories map[string]uint16  `toml:"repositories"`
}

// NewData returns an empty registry document.
func NewData() *Data {
	return &Data{
		Projects:     make(map[string]Project),
		Repositories: make(map[string]uint16),
	}
}
