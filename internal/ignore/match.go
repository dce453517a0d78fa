package ignore

import (
	"path/filepath"

	"github.com/danwakefield/fnmatch"
)

// MatchName reports whether an entry name matches any glob pattern in the
// set. Matching is byte-wise case-sensitive with standard glob semantics
// (`*`, `?`, `[...]`).
func (r *RuleSet) MatchName(name string) bool {
	for _, pattern := range r.patterns {
		if fnmatch.Match(pattern, name, 0) {
			return true
		}
	}
	return false
}

// Ignored reports whether the entry at relativePath should be excluded.
// Glob patterns are applied to the base name; gitignore rules, when loaded,
// are applied to the full relative path. The root itself is never ignored.
func (r *RuleSet) Ignored(relativePath string, isDir bool) bool {
	if r == nil {
		return false
	}
	if relativePath == "" || relativePath == "." {
		return false
	}

	if r.MatchName(filepath.Base(relativePath)) {
		r.logger.Debug("ignore: %q matched glob pattern", relativePath)
		return true
	}

	if r.repoIgnore != nil && r.matchGitignore(relativePath) {
		r.logger.Debug("ignore: %q matched gitignore rule", relativePath)
		return true
	}
	return false
}

// matchGitignore delegates to the gitignore engine. The library has panicked
// on odd inputs before; a panic is treated as "not ignored".
func (r *RuleSet) matchGitignore(relativePath string) (ignored bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("ignore: panic in gitignore engine for %q: %v", relativePath, rec)
			ignored = false
		}
	}()

	// The engine resolves paths against the repository base, so hand it the
	// absolute path rather than trusting the working directory. Ignore
	// already honors negation rules ("!pattern") via the last match.
	return r.repoIgnore.Ignore(filepath.Join(r.rootDir, relativePath))
}
