// Package app wires configuration, logging, traversal and output together.
package app

import (
	"os"

	"codemap/internal/config"
	"codemap/internal/ignore"
	"codemap/internal/logging"
	"codemap/internal/printer"
	"codemap/internal/tree"

	"github.com/fatih/color"
)

// App encapsulates the main application functionality.
type App struct {
	cfg     *config.Config
	log     *logging.Leveled
	printer *printer.Printer
}

// New creates an App instance from the given configuration.
func New(cfg *config.Config) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logging.New(os.Stderr, cfg.Verbose, cfg.UseColors)

	p := printer.New().WithColors(cfg.UseColors)
	if cfg.OutputDir != "" {
		p = p.WithOutputDir(cfg.OutputDir)
	}

	return &App{
		cfg:     cfg,
		log:     log,
		printer: p,
	}
}

// Run renders the directory structure, saves it and echoes it to stdout.
// Errors propagate to the caller; nothing here exits the process.
func (a *App) Run() error {
	a.log.Debug("root directory: %s", a.cfg.RootDir)
	a.log.Debug("format: %s, max depth: %d", a.cfg.Format, a.cfg.MaxDepth)
	if len(a.cfg.IgnorePatterns) > 0 {
		a.log.Debug("custom ignore patterns (replacing defaults): %v", a.cfg.IgnorePatterns)
	}

	ruleOptions := []ignore.Option{
		ignore.WithLogger(a.log),
		ignore.WithPatterns(a.cfg.IgnorePatterns),
		ignore.WithGitignore(a.cfg.UseGitignore),
	}
	rules, err := ignore.New(a.cfg.RootDir, ruleOptions...)
	if err != nil {
		return err
	}
	a.log.Debug("active ignore patterns: %v", rules.Patterns())

	builder, err := tree.New(a.cfg.RootDir, rules,
		tree.WithMaxDepth(a.cfg.MaxDepth),
		tree.WithLogger(a.log),
	)
	if err != nil {
		return err
	}

	rendering, err := builder.Render(a.cfg.Format)
	if err != nil {
		return err
	}

	outputPath, err := a.printer.Save(rendering)
	if err != nil {
		return err
	}
	a.printer.Echo(outputPath, rendering)
	return nil
}
