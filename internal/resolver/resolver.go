// Package resolver maps a request path onto one of the two content roots and
// produces a canonical filesystem path that is guaranteed to stay inside it.
package resolver

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/f4ah6o/lime-go/internal/config"
)

// ErrInvalidPath is returned for malformed or escaping request paths.
var ErrInvalidPath = errors.New("invalid path")

// Root selects the content root a request is served from.
type Root int

const (
	// Pages serves HTML documents from the pages directory.
	Pages Root = iota
	// Static serves every other asset from the static directory.
	Static
)

func (r Root) String() string {
	switch r {
	case Pages:
		return "pages"
	case Static:
		return "static"
	}
	return fmt.Sprintf("Root(%d)", int(r))
}

// Target is the resolved location of one request.
type Target struct {
	// Root is the content root chosen for the request.
	Root Root
	// RootDir is the canonical root directory.
	RootDir string
	// RelativePath is slash-separated and relative to RootDir.
	RelativePath string
	// AbsolutePath is canonical and lies inside RootDir.
	AbsolutePath string
	// Ext is the lowercase, dot-free extension of the served file.
	Ext string
}

const indexPage = "index.html"

// Classify returns the root for a request path by the extension of its final
// segment: none or "html" selects Pages, anything else Static.
func Classify(requestPath string) Root {
	ext := extension(requestPath)
	if ext == "" || ext == "html" {
		return Pages
	}
	return Static
}

// Resolve turns a request path into a Target under cfg's roots.
// It does not check that the file exists.
func Resolve(requestPath string, cfg *config.Config) (Target, error) {
	p := requestPath
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if p == "" {
		return Target{}, invalid("empty path")
	}
	if p[0] != '/' {
		return Target{}, invalid("path must start with /")
	}
	if strings.IndexByte(p, 0) >= 0 {
		return Target{}, invalid("null byte in path")
	}
	for _, seg := range strings.FieldsFunc(p, isSeparator) {
		if seg == ".." {
			return Target{}, invalid("parent segment in path")
		}
	}

	rel := strings.Trim(path.Clean(p), "/")
	if rel == "" {
		rel = indexPage
	}

	t := Target{Root: Classify("/" + rel), Ext: extension(rel)}
	dir := cfg.StaticDir
	if t.Root == Pages {
		dir = cfg.PagesDir
		if t.Ext == "" {
			rel += ".html"
		}
		t.Ext = "html"
	}
	t.RelativePath = rel

	rootDir, err := canonicalize(dir)
	if err != nil {
		return Target{}, fmt.Errorf("failed to resolve %s root: %w", t.Root, err)
	}
	abs, err := canonicalize(filepath.Join(rootDir, filepath.FromSlash(rel)))
	if err != nil {
		return Target{}, fmt.Errorf("failed to resolve %s: %w", rel, err)
	}
	if !within(rootDir, abs) {
		return Target{}, invalid("resolved path escapes " + t.Root.String() + " root")
	}

	t.RootDir = rootDir
	t.AbsolutePath = abs
	return t, nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPath, reason)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// extension returns the lowercase extension of the final segment without the dot.
func extension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// canonicalize makes p absolute and evaluates symlinks along its longest
// existing prefix. The remainder is appended unchanged.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	cur, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
