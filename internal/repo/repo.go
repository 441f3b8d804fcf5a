package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/system"
)

// RemoteName is the remote whose URL identifies a repository.
const RemoteName = "origin"

// Resolver determines which repository a directory belongs to.
type Resolver interface {
	// Origin returns the origin remote URL of the repository containing dir.
	Origin(ctx context.Context, dir string) (string, error)
}

// GitResolver reads the origin URL with go-git and falls back to the git
// CLI, which also applies url.<base>.insteadOf rewrites from the user's
// git config.
type GitResolver struct {
	executor system.CommandExecutor
}

// NewGitResolver creates a GitResolver. A nil executor disables the CLI fallback.
func NewGitResolver(executor system.CommandExecutor) *GitResolver {
	return &GitResolver{executor: executor}
}

func (g *GitResolver) Origin(ctx context.Context, dir string) (string, error) {
	url, err := openOrigin(dir)
	if err == nil {
		return url, nil
	}
	logging.Debug("go-git could not read origin, falling back to git CLI", "dir", dir, "error", err)

	if g.executor == nil {
		return "", errors.GitFailed(err)
	}
	output, execErr := g.executor.Execute(ctx, "git", "-C", dir, "remote", "get-url", RemoteName)
	if execErr != nil {
		return "", errors.GitFailed(execErr)
	}
	url = strings.TrimSpace(string(output))
	if url == "" {
		return "", errors.GitFailed(fmt.Errorf("remote %q has no URL", RemoteName))
	}
	return url, nil
}

func openOrigin(dir string) (string, error) {
	repository, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to find a git repository that %q belongs to: %w", dir, err)
	}

	remote, err := repository.Remote(RemoteName)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", RemoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", RemoteName)
	}
	return urls[0], nil
}

// StaticResolver maps directories to fixed origins.
type StaticResolver map[string]string

func (s StaticResolver) Origin(ctx context.Context, dir string) (string, error) {
	if url, ok := s[dir]; ok {
		return url, nil
	}
	return "", errors.GitFailed(fmt.Errorf("%q is not in a git repository", dir))
}
