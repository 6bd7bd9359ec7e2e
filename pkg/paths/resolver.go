package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/types"
)

// Resolver turns configuration strings into absolute, cleaned paths.
type Resolver struct {
	baseDir string
	dotenv  map[string]string
}

// NewResolver creates a resolver that anchors relative paths at baseDir and
// looks variables up in the process environment, then in dotenv.
func NewResolver(baseDir string, dotenv map[string]string) *Resolver {
	return &Resolver{baseDir: baseDir, dotenv: dotenv}
}

func (r *Resolver) lookup(name string) (string, bool) {
	if v, ok := os.LookupEnv(name); ok {
		return v, true
	}
	v, ok := r.dotenv[name]
	return v, ok
}

// Expand performs tilde and variable expansion on s.
func (r *Resolver) Expand(s string) (string, error) {
	prefix, rest := splitTilde(s)
	if prefix != "" {
		home, err := r.home()
		if err != nil {
			return "", err
		}
		prefix = home
	}

	var missing []string
	expanded := os.Expand(rest, func(name string) string {
		key, def, hasDefault := strings.Cut(name, ":-")
		if v, ok := r.lookup(key); ok && (v != "" || !hasDefault) {
			return v
		}
		if hasDefault {
			return def
		}
		missing = append(missing, key)
		return ""
	})

	if len(missing) > 0 {
		return "", errors.Newf(errors.ErrEnvExpansion,
			"failed to expand %q: environment variable not found: %s", s, strings.Join(missing, ", ")).
			WithDetail("input", s).
			WithDetail("variables", missing)
	}
	return prefix + expanded, nil
}

func (r *Resolver) home() (string, error) {
	if home, ok := r.lookup(EnvHome); ok && home != "" {
		return home, nil
	}
	return GetHomeDirectory()
}

// Resolve expands s and makes it absolute relative to the base directory.
func (r *Resolver) Resolve(s string) (string, error) {
	expanded, err := r.Expand(s)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(r.baseDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

// ResolveAll resolves every link -> target entry, in sorted link order, and
// stops at the first expansion failure. Two raw links resolving to the same
// path are an INVALID_INPUT error.
func (r *Resolver) ResolveAll(raw map[string]string) ([]types.Symlink, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]string, len(raw))
	out := make([]types.Symlink, 0, len(raw))
	for _, rawLink := range keys {
		link, err := r.Resolve(rawLink)
		if err != nil {
			return nil, err
		}
		target, err := r.Resolve(raw[rawLink])
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[link]; ok {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"links %q and %q both resolve to %s", prev, rawLink, link).
				WithDetail("link", link)
		}
		seen[link] = rawLink
		out = append(out, types.Symlink{Link: link, Target: target})
	}
	return out, nil
}
