package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "gitsync.dev/pkg/gitsync/internal/model"
)

// Config is the process-wide state shared by the resolver and the status
// engine. It is built once per invocation.
type Config struct {
	// RepoRoot is the root of the destination repository.
	RepoRoot m.Path
	// RepoRootParent is the directory holding RepoRoot and, by convention,
	// its sibling source repositories.
	RepoRootParent m.Path
	// Overrides maps a source repository name to an explicit location.
	Overrides map[string]string
}

// NewConfig builds a Config for the repository at repoRoot.
func NewConfig(repoRoot m.Path, overrides map[string]string) *Config {
	root := filepath.Clean(string(repoRoot))

	parent := filepath.Dir(root)
	if parent == "" || parent == "." {
		parent = root
	}

	if overrides == nil {
		overrides = map[string]string{}
	}

	return &Config{
		RepoRoot:       m.Path(root),
		RepoRootParent: m.Path(parent),
		Overrides:      overrides,
	}
}

// Resolver maps source repository names to filesystem locations.
type Resolver struct {
	cfg *Config
}

// NewResolver returns a Resolver reading cfg.
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the override for name if one exists, otherwise the sibling
// directory of the repository root with that name. It never touches the
// filesystem.
func (r *Resolver) Resolve(name string) m.Path {
	if override, ok := r.cfg.Overrides[name]; ok {
		return m.Path(NormalizeSeparators(override))
	}

	return m.Path(filepath.Join(string(r.cfg.RepoRootParent), name))
}

// ResolveAll pairs every block with its resolved root.
func (r *Resolver) ResolveAll(blocks []m.Block) []m.ResolvedRepo {
	repos := make([]m.ResolvedRepo, 0, len(blocks))
	for _, block := range blocks {
		repos = append(repos, m.ResolvedRepo{Block: block, Root: r.Resolve(block.Name)})
	}

	return repos
}

// NormalizeSeparators rewrites both '/' and '\' to the native separator.
func NormalizeSeparators(path string) string {
	if os.PathSeparator == '/' {
		return strings.ReplaceAll(path, `\`, "/")
	}

	return strings.ReplaceAll(path, "/", string(os.PathSeparator))
}

// RepoPath joins a manifest-relative path onto root. A bare separator denotes
// root itself.
func RepoPath(root m.Path, relative string) m.Path {
	if relative == "/" || relative == `\` {
		return root
	}

	return m.Path(filepath.Join(string(root), NormalizeSeparators(relative)))
}

// ParseOverride splits a "name=path" argument. The name is everything before
// the first '=' and must not be empty.
func ParseOverride(arg string) (string, string, error) {
	name, path, found := strings.Cut(arg, "=")
	if !found || name == "" {
		return "", "", fmt.Errorf("invalid repository override %q (expected name=path)", arg)
	}

	return name, path, nil
}
