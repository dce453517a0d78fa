// Package config holds the application configuration assembled from
// command-line flags.
package config

import (
	"os"

	"codemap/internal/tree"

	"github.com/mattn/go-isatty"
)

// Config holds all application settings.
type Config struct {
	// Traversal settings
	RootDir        string
	Format         string
	MaxDepth       int      // tree.UnlimitedDepth when no limit is set
	IgnorePatterns []string // replaces the default set when non-empty
	UseGitignore   bool

	// Output settings
	OutputDir string // empty means <home>/Desktop
	NoColor   bool
	UseColors bool

	// Logging settings
	Verbose bool
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		RootDir:  ".",
		Format:   tree.FormatTree,
		MaxDepth: tree.UnlimitedDepth,
	}
}

// DetectColors decides whether colored output should be used, based on the
// no-color flag and whether stdout is a terminal.
func (c *Config) DetectColors() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stdout.Fd())
}
