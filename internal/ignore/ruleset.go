// Package ignore provides glob-based name filtering for directory traversal,
// optionally layered with .gitignore rules from the scanned tree.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"codemap/internal/logging"

	gitignore "github.com/denormal/go-gitignore"
)

// DefaultPatterns is the built-in ignore set covering common build, VCS and
// cache artifacts. Caller-supplied patterns replace it entirely.
var DefaultPatterns = []string{
	"*.pyc", "*.pyo", "*.pyd",
	".git", ".svn", ".hg",
	"__pycache__", ".pytest_cache",
	"node_modules", "venv", ".venv",
	".idea", ".vscode", ".env",
	"*.iml", "build", ".gradle",
	"*.log", "*.bak",
}

// RuleSet decides whether a file or directory should be excluded from
// traversal output.
type RuleSet struct {
	rootDir      string
	patterns     []string
	useGitignore bool
	repoIgnore   gitignore.GitIgnore
	logger       logging.Logger
}

// Option configures a RuleSet.
type Option func(*RuleSet)

// WithPatterns replaces the default glob pattern set.
func WithPatterns(patterns []string) Option {
	return func(r *RuleSet) {
		if len(patterns) > 0 {
			r.patterns = patterns
		}
	}
}

// WithGitignore enables loading of .gitignore rules from the root directory.
func WithGitignore(enabled bool) Option {
	return func(r *RuleSet) {
		r.useGitignore = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *RuleSet) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a RuleSet rooted at rootDir. Without options it carries the
// default pattern set and no gitignore rules.
func New(rootDir string, opts ...Option) (*RuleSet, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for %q: %w", rootDir, err)
	}

	ruleSet := &RuleSet{
		rootDir:  absRootDir,
		patterns: DefaultPatterns,
		logger:   logging.Noop{},
	}
	for _, opt := range opts {
		opt(ruleSet)
	}

	if ruleSet.useGitignore {
		if err := ruleSet.loadRepository(); err != nil {
			return nil, err
		}
	}
	return ruleSet, nil
}

// loadRepository initializes the gitignore engine for the root directory,
// picking up .gitignore files recursively the way git does.
func (r *RuleSet) loadRepository() error {
	repoMatcher, repoErr := gitignore.NewRepository(r.rootDir)
	if repoErr != nil {
		if repoMatcher == nil {
			// The engine parses its reader eagerly and cannot take a nil
			// one; an empty reader yields a matcher with no rules.
			r.logger.Warn("ignore: no .gitignore rules loaded for %q: %v", r.rootDir, repoErr)
			repoMatcher = gitignore.New(strings.NewReader(""), r.rootDir, nil)
		} else {
			return fmt.Errorf("ignore: failed to load gitignore rules: %w", repoErr)
		}
	}
	r.repoIgnore = repoMatcher
	r.logger.Debug("ignore: gitignore rules loaded for %q", r.rootDir)
	return nil
}

// Patterns returns the active glob pattern set.
func (r *RuleSet) Patterns() []string {
	return r.patterns
}
