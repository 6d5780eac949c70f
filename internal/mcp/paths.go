package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pathGuard confines tool paths to one directory tree.
type pathGuard struct {
	root string
}

func newPathGuard(root string) (*pathGuard, error) {
	if root == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	return &pathGuard{root: filepath.Clean(abs)}, nil
}

// Resolve returns the absolute path for p, taking relative paths from the
// root. Paths escaping the root, directly or through a symlink, are rejected.
func (g *pathGuard) Resolve(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(g.root, p)
	}
	clean := filepath.Clean(p)
	if !g.within(clean, g.root) {
		return "", fmt.Errorf("path is outside configured directory: %s", p)
	}

	// Compare real paths too when both exist.
	realRoot, err := filepath.EvalSymlinks(g.root)
	if err != nil {
		return clean, nil
	}
	if real, err := filepath.EvalSymlinks(clean); err == nil && !g.within(real, realRoot) {
		return "", fmt.Errorf("path is outside configured directory: %s", p)
	} else if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return clean, nil
}

func (g *pathGuard) within(p, root string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(root, string(filepath.Separator))+string(filepath.Separator))
}
