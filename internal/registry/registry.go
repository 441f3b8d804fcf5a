package registry

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"

	"github.com/firefly-engineering/portman/internal/allocator"
	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
)

// Reconciler regenerates external state from the registry after it is saved.
type Reconciler interface {
	Reload(ctx context.Context, r *Registry) error
}

// PathChecker reports whether a path exists on disk.
type PathChecker interface {
	Exists(path string) bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithReconciler sets the reconciler invoked after every write.
func WithReconciler(rc Reconciler) Option {
	return func(r *Registry) {
		r.reconciler = rc
	}
}

// Registry holds the projects and remembered repository ports for a single
// invocation. Mutations only touch memory until Save is called.
type Registry struct {
	store      Store
	alloc      *allocator.Allocator
	reconciler Reconciler

	projects map[string]Project
	repos    map[string]uint16
	dirty    bool
}

// New loads the registry from store and reconciles it against the ports
// available in alloc. Conflicting linked ports and directories are cleared
// and ports outside the pool are reassigned, marking the registry dirty.
func New(store Store, alloc *allocator.Allocator, opts ...Option) (*Registry, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		store:    store,
		alloc:    alloc,
		projects: data.Projects,
		repos:    data.Repositories,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.projects == nil {
		r.projects = make(map[string]Project)
	}
	if r.repos == nil {
		r.repos = make(map[string]uint16)
	}

	names := r.names()
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return nil, errors.RegistryError("registry contains an invalid project", err)
		}
	}

	linkedPorts := make(map[uint16]bool)
	directories := make(map[string]bool)
	for _, name := range names {
		p := r.projects[name]
		if p.LinkedPort != 0 {
			if linkedPorts[p.LinkedPort] {
				logging.Debug("clearing duplicate linked port", "project", name, "port", p.LinkedPort)
				p.LinkedPort = 0
				r.dirty = true
			} else {
				linkedPorts[p.LinkedPort] = true
			}
		}
		if p.Directory != "" {
			if directories[p.Directory] {
				logging.Debug("clearing duplicate directory", "project", name, "directory", p.Directory)
				p.Directory = ""
				r.dirty = true
			} else {
				directories[p.Directory] = true
			}
		}
		r.projects[name] = p
	}

	for port := range linkedPorts {
		r.alloc.Discard(port)
	}

	for _, name := range names {
		p := r.projects[name]
		port, err := r.alloc.Allocate(p.Port)
		if err != nil {
			return nil, errors.EmptyAllocator(err)
		}
		if port != p.Port {
			logging.Debug("reassigning project port", "project", name, "old", p.Port, "new", port)
			p.Port = port
			r.projects[name] = p
			r.dirty = true
		}
	}

	return r, nil
}

// Dirty reports whether the registry has unsaved changes.
func (r *Registry) Dirty() bool {
	return r.dirty
}

// Save writes the registry if it has changed and then runs the reconciler.
// A reconciler failure is returned as a CaddyFailed error after the registry
// has already been written.
func (r *Registry) Save(ctx context.Context) error {
	if !r.dirty {
		return nil
	}

	data := &Data{Projects: r.projects, Repositories: r.repos}
	if err := r.store.Save(data); err != nil {
		return err
	}
	r.dirty = false
	logging.Debug("saved registry", "projects", len(r.projects), "repositories", len(r.repos))

	if r.reconciler == nil {
		return nil
	}
	if err := r.reconciler.Reload(ctx, r); err != nil {
		if errors.HasCode(err, errors.ExitCaddyFailed) {
			return err
		}
		return errors.CaddyFailed("failed to reload caddy", err)
	}
	return nil
}

// CreateRequest describes a project to create.
type CreateRequest struct {
	// Name of the project. When empty it is derived from the basename of Cwd.
	Name string
	Cwd  string
	// Directory that activates the project, if any
	Directory  string
	LinkedPort uint16
	// Overwrite updates an existing project instead of failing
	Overwrite bool
}

// CreateResult is the outcome of Create.
type CreateResult struct {
	NamedProject
	// Updated is true when an existing project was overwritten
	Updated bool
	// Derived is true when the name came from the working directory
	Derived bool
}

// Create adds a new project with a freshly allocated port.
func (r *Registry) Create(req CreateRequest) (*CreateResult, error) {
	name := req.Name
	derived := false
	if name == "" {
		if req.Cwd == "" {
			return nil, errors.ValidationError("a project name is required")
		}
		name = NormalizeName(filepath.Base(req.Cwd))
		derived = true
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	directory := cleanDirectory(req.Directory)

	if _, exists := r.projects[name]; exists {
		if !req.Overwrite {
			return nil, errors.DuplicateProject(name)
		}
		if req.LinkedPort != 0 {
			if err := r.Link(name, req.LinkedPort); err != nil {
				return nil, err
			}
		}
		project, err := r.Update(name, directory)
		if err != nil {
			return nil, err
		}
		return &CreateResult{NamedProject: NamedProject{Name: name, Project: project}, Updated: true, Derived: derived}, nil
	}

	if owner, ok := r.directoryOwner(directory); ok {
		return nil, errors.DuplicateDirectory(owner, directory)
	}

	if req.LinkedPort != 0 {
		r.alloc.Discard(req.LinkedPort)
	}
	port, err := r.alloc.Allocate(0)
	if err != nil {
		return nil, errors.EmptyAllocator(err)
	}
	r.projects[name] = Project{Port: port, Directory: directory}
	r.dirty = true

	if req.LinkedPort != 0 {
		if err := r.Link(name, req.LinkedPort); err != nil {
			return nil, err
		}
	}

	return &CreateResult{NamedProject: NamedProject{Name: name, Project: r.projects[name]}, Derived: derived}, nil
}

// Update replaces a project's directory. An empty directory removes it.
func (r *Registry) Update(name, directory string) (Project, error) {
	p, ok := r.projects[name]
	if !ok {
		return Project{}, errors.NonExistentProject(name)
	}

	directory = cleanDirectory(directory)
	if p.Directory == directory {
		return p, nil
	}
	if owner, ok := r.directoryOwner(directory); ok && owner != name {
		return Project{}, errors.DuplicateDirectory(owner, directory)
	}

	p.Directory = directory
	r.projects[name] = p
	r.dirty = true
	return p, nil
}

// Delete removes a project and returns it.
func (r *Registry) Delete(name string) (Project, error) {
	p, ok := r.projects[name]
	if !ok {
		return Project{}, errors.NonExistentProject(name)
	}
	delete(r.projects, name)
	r.dirty = true
	return p, nil
}

// DeleteMany removes every named project that exists and returns the removed
// projects in name order.
func (r *Registry) DeleteMany(names []string) []NamedProject {
	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	var removed []NamedProject
	for _, name := range names {
		if p, ok := r.projects[name]; ok {
			delete(r.projects, name)
			removed = append(removed, NamedProject{Name: name, Project: p})
		}
	}
	if len(removed) > 0 {
		r.dirty = true
	}
	return removed
}

// DeleteAll removes every project.
func (r *Registry) DeleteAll() []NamedProject {
	return r.DeleteMany(r.names())
}

// Cleanup deletes the projects whose directory no longer exists.
func (r *Registry) Cleanup(checker PathChecker) []NamedProject {
	var stale []string
	for _, name := range r.names() {
		if dir := r.projects[name].Directory; dir != "" && !checker.Exists(dir) {
			stale = append(stale, name)
		}
	}
	return r.DeleteMany(stale)
}

// Link makes port a linked port of the named project. A project that is
// using port as its own port is moved to a new port, and any other project
// holding port as its linked port loses it.
func (r *Registry) Link(name string, port uint16) error {
	if _, ok := r.projects[name]; !ok {
		return errors.NonExistentProject(name)
	}

	r.alloc.Discard(port)
	for _, other := range r.names() {
		p := r.projects[other]
		changed := false
		if p.Port == port {
			newPort, err := r.alloc.Allocate(0)
			if err != nil {
				return errors.EmptyAllocator(err)
			}
			logging.Debug("evicting project from linked port", "project", other, "old", p.Port, "new", newPort)
			p.Port = newPort
			changed = true
		}
		if other != name && p.LinkedPort == port {
			p.LinkedPort = 0
			changed = true
		}
		if changed {
			r.projects[other] = p
			r.dirty = true
		}
	}

	p := r.projects[name]
	if p.LinkedPort != port {
		p.LinkedPort = port
		r.projects[name] = p
		r.dirty = true
	}
	return nil
}

// Unlink removes port from the project it is linked to and returns that
// project's name.
func (r *Registry) Unlink(port uint16) (string, bool) {
	for _, name := range r.names() {
		p := r.projects[name]
		if p.LinkedPort == port {
			p.LinkedPort = 0
			r.projects[name] = p
			r.dirty = true
			return name, true
		}
	}
	return "", false
}

// Get returns the named project.
func (r *Registry) Get(name string) (Project, bool) {
	p, ok := r.projects[name]
	return p, ok
}

// Projects returns all projects in name order.
func (r *Registry) Projects() []NamedProject {
	names := r.names()
	projects := make([]NamedProject, 0, len(names))
	for _, name := range names {
		projects = append(projects, NamedProject{Name: name, Project: r.projects[name]})
	}
	return projects
}

// MatchDirectory returns the project activated by the directory.
func (r *Registry) MatchDirectory(dir string) (NamedProject, bool) {
	owner, ok := r.directoryOwner(cleanDirectory(dir))
	if !ok {
		return NamedProject{}, false
	}
	return NamedProject{Name: owner, Project: r.projects[owner]}, true
}

// GetRepoPort returns the port last linked for a repository.
func (r *Registry) GetRepoPort(repo string) (uint16, error) {
	port, ok := r.repos[repo]
	if !ok {
		return 0, errors.NonExistentRepo(repo)
	}
	return port, nil
}

// SetRepoPort remembers the port linked for a repository.
func (r *Registry) SetRepoPort(repo string, port uint16) {
	if current, ok := r.repos[repo]; ok && current == port {
		return
	}
	r.repos[repo] = port
	r.dirty = true
}

// DeleteRepo forgets a repository and returns its port.
func (r *Registry) DeleteRepo(repo string) (uint16, error) {
	port, ok := r.repos[repo]
	if !ok {
		return 0, errors.NonExistentRepo(repo)
	}
	delete(r.repos, repo)
	r.dirty = true
	return port, nil
}

// Repos returns the remembered repositories in order.
func (r *Registry) Repos() []RepoPort {
	repos := make([]RepoPort, 0, len(r.repos))
	for repo, port := range r.repos {
		repos = append(repos, RepoPort{Repo: repo, Port: port})
	}
	slices.SortFunc(repos, func(a, b RepoPort) int {
		return cmp.Compare(a.Repo, b.Repo)
	})
	return repos
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.projects))
	for name := range r.projects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) directoryOwner(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	for _, name := range r.names() {
		if r.projects[name].Directory == dir {
			return name, true
		}
	}
	return "", false
}

func cleanDirectory(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir)
}
