// Package tree renders a directory hierarchy as an indented tree diagram or
// a flat sorted list of relative paths.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codemap/internal/ignore"
	"codemap/internal/logging"
)

// Supported output formats.
const (
	FormatTree = "tree"
	FormatList = "list"
)

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "

	permissionPlaceholder = "[Permission Denied]"

	// UnlimitedDepth disables the depth limit.
	UnlimitedDepth = -1
)

// ErrInvalidFormat is returned by Render for an unrecognized format value.
var ErrInvalidFormat = errors.New("invalid output format")

var separator = string(filepath.Separator)

// Builder produces structure renderings for a directory tree. The root is
// not validated at construction; a missing or unreadable root surfaces on
// the first read during Render.
type Builder struct {
	rootDir  string
	rules    *ignore.RuleSet
	maxDepth int
	logger   logging.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDepth limits traversal depth for tree rendering. Immediate children
// of the root are at depth 0; an entry at the limit is listed but not
// descended into. Negative values mean unlimited.
func WithMaxDepth(depth int) Option {
	return func(b *Builder) {
		b.maxDepth = depth
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger logging.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a Builder rooted at rootDir, filtering entries through rules.
func New(rootDir string, rules *ignore.RuleSet, opts ...Option) (*Builder, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("tree: failed to get absolute path for %q: %w", rootDir, err)
	}

	builder := &Builder{
		rootDir:  absRootDir,
		rules:    rules,
		maxDepth: UnlimitedDepth,
		logger:   logging.Noop{},
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder, nil
}

// Render produces the rendering for the given format. The format is
// validated before any filesystem I/O.
func (b *Builder) Render(format string) (string, error) {
	switch format {
	case FormatTree:
		return b.renderTree()
	case FormatList:
		return b.renderList()
	default:
		return "", fmt.Errorf("%w %q: choose %q or %q", ErrInvalidFormat, format, FormatTree, FormatList)
	}
}

// renderTree walks depth-first in pre-order. The root is always the first
// line, shown as its base name with a trailing separator and no connector.
func (b *Builder) renderTree() (string, error) {
	lines := []string{filepath.Base(b.rootDir) + separator}
	subtree, err := b.walkTree(b.rootDir, "", 0)
	if err != nil {
		return "", err
	}
	lines = append(lines, subtree...)
	return strings.Join(lines, "\n"), nil
}

func (b *Builder) walkTree(dir string, prefix string, depth int) ([]string, error) {
	if b.maxDepth >= 0 && depth > b.maxDepth {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// A permission failure is localized to this branch: one placeholder
		// line stands in for the unreadable children and traversal stops
		// here. Any other failure aborts the whole render.
		if errors.Is(err, fs.ErrPermission) {
			b.logger.Warn("tree: permission denied reading %q", dir)
			return []string{prefix + lastConnector + permissionPlaceholder}, nil
		}
		return nil, fmt.Errorf("tree: reading %q: %w", dir, err)
	}

	// os.ReadDir returns entries sorted by filename, byte-wise.
	kept := entries[:0]
	for _, entry := range entries {
		if !b.rules.Ignored(b.relativePath(dir, entry.Name()), entry.IsDir()) {
			kept = append(kept, entry)
		}
	}

	var lines []string
	for i, entry := range kept {
		connector, padding := branchConnector, branchPadding
		if i == len(kept)-1 {
			connector, padding = lastConnector, lastPadding
		}

		name := entry.Name()
		if entry.IsDir() {
			name += separator
		}
		lines = append(lines, prefix+connector+name)

		if entry.IsDir() {
			subtree, err := b.walkTree(filepath.Join(dir, entry.Name()), prefix+padding, depth+1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, subtree...)
		}
	}
	return lines, nil
}

// renderList walks the whole tree regardless of the depth limit and emits
// one line per non-ignored entry: relative path, with a trailing separator
// for directories. The root itself is suppressed. Lines are sorted
// lexicographically as a final step.
func (b *Builder) renderList() (string, error) {
	var lines []string
	err := filepath.WalkDir(b.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == b.rootDir {
				return fmt.Errorf("tree: reading %q: %w", path, err)
			}
			if errors.Is(err, fs.ErrPermission) {
				b.logger.Warn("tree: permission denied reading %q, pruning", path)
				return nil
			}
			return fmt.Errorf("tree: walking %q: %w", path, err)
		}

		relativePath, relErr := filepath.Rel(b.rootDir, path)
		if relErr != nil {
			return fmt.Errorf("tree: resolving %q: %w", path, relErr)
		}
		if relativePath == "." {
			return nil
		}

		if b.rules.Ignored(relativePath, entry.IsDir()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			lines = append(lines, relativePath+separator)
		} else {
			lines = append(lines, relativePath)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

func (b *Builder) relativePath(dir, name string) string {
	relativePath, err := filepath.Rel(b.rootDir, filepath.Join(dir, name))
	if err != nil {
		return name
	}
	return relativePath
}
