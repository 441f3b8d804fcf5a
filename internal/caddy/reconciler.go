package caddy

import (
	"context"
	"fmt"

	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/registry"
	"github.com/firefly-engineering/portman/internal/system"
)

// Reconciler writes the generated Caddy configuration and reloads Caddy.
type Reconciler struct {
	fs       system.FileSystem
	executor system.CommandExecutor
	env      system.Environment
	paths    *config.Paths
	cfg      *config.Config
}

// NewReconciler creates a Reconciler.
func NewReconciler(fsys system.FileSystem, executor system.CommandExecutor, env system.Environment, paths *config.Paths, cfg *config.Config) *Reconciler {
	return &Reconciler{
		fs:       fsys,
		executor: executor,
		env:      env,
		paths:    paths,
		cfg:      cfg,
	}
}

// Caddyfile renders the fragment for the registry's current projects.
func (rc *Reconciler) Caddyfile(r *registry.Registry) string {
	return Render(r.Projects(), rc.paths.GalleryDir, rc.cfg.RedirectLinkedPorts())
}

// Reload writes the fragment and gallery, makes sure the root Caddyfile
// imports the fragment, and runs `caddy reload`.
func (rc *Reconciler) Reload(ctx context.Context, r *registry.Registry) error {
	projects := r.Projects()

	fragment := Render(projects, rc.paths.GalleryDir, rc.cfg.RedirectLinkedPorts())
	if err := system.WriteFileAll(rc.fs, rc.paths.CaddyfilePath, []byte(fragment)); err != nil {
		return errors.CaddyFailed(fmt.Sprintf("failed to write Caddyfile at %q", rc.paths.CaddyfilePath), err)
	}

	gallery, err := RenderGallery(projects)
	if err != nil {
		return errors.CaddyFailed("failed to generate gallery", err)
	}
	if err := system.WriteFileAll(rc.fs, rc.paths.GalleryIndex, []byte(gallery)); err != nil {
		return errors.CaddyFailed(fmt.Sprintf("failed to write gallery index file at %q", rc.paths.GalleryIndex), err)
	}

	root, err := config.RootCaddyfile(rc.cfg, rc.env)
	if err != nil {
		return errors.CaddyFailed("failed to locate the root Caddyfile", err)
	}
	existing, _, err := system.ReadFileIfExists(rc.fs, root)
	if err != nil {
		return errors.CaddyFailed(fmt.Sprintf("failed to read Caddyfile at %q", root), err)
	}
	if updated, changed := EnsureImport(string(existing), rc.paths.CaddyfilePath); changed {
		logging.Debug("adding portman import to root Caddyfile", "path", root)
		if err := system.WriteFileAll(rc.fs, root, []byte(updated)); err != nil {
			return errors.CaddyFailed(fmt.Sprintf("failed to write Caddyfile at %q", root), err)
		}
	}

	args := []string{"reload", "--adapter", "caddyfile", "--config", root}
	logging.Debug("reloading caddy", "args", args)
	if _, err := rc.executor.Execute(ctx, "caddy", args...); err != nil {
		return errors.CaddyFailed("failed to reload caddy", err)
	}
	return nil
}
