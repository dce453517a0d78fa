// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"codemap/internal/app"
	"codemap/internal/config"
	"codemap/internal/tree"

	"github.com/spf13/cobra"
)

const (
	rootUse   = "codemap [path]"
	rootShort = "Render a directory tree or a flat file list"
	rootLong  = `codemap walks a directory tree and renders its structure, either as an
indented tree diagram or as a flat sorted list of relative paths. The
rendering is saved to a timestamped file and echoed to standard output.`

	depthFlagName     = "depth"
	formatFlagName    = "format"
	ignoreFlagName    = "ignore"
	gitignoreFlagName = "gitignore"
	outputFlagName    = "output"
	verboseFlagName   = "verbose"
	noColorFlagName   = "no-color"

	depthFlagDescription     = "maximum traversal depth, non-negative (unlimited when omitted)"
	formatFlagDescription    = "output format: tree or list"
	ignoreFlagDescription    = "glob patterns to ignore, repeatable or comma-separated (replaces the default set)"
	gitignoreFlagDescription = "also apply .gitignore rules from the scanned tree"
	outputFlagDescription    = "directory for the output file (default: <home>/Desktop)"
	verboseFlagDescription   = "enable debug logging"
	noColorFlagDescription   = "disable colored output"
)

// NewRootCommand builds the root cobra command.
func NewRootCommand() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:           rootUse,
		Short:         rootShort,
		Long:          rootLong,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.RootDir = args[0]
			}
			if cmd.Flags().Changed(depthFlagName) && cfg.MaxDepth < 0 {
				return fmt.Errorf("cli: --%s must be non-negative, got %d", depthFlagName, cfg.MaxDepth)
			}
			cfg.DetectColors()
			return app.New(cfg).Run()
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.MaxDepth, depthFlagName, "d", tree.UnlimitedDepth, depthFlagDescription)
	flags.StringVarP(&cfg.Format, formatFlagName, "f", tree.FormatTree, formatFlagDescription)
	flags.StringSliceVarP(&cfg.IgnorePatterns, ignoreFlagName, "i", nil, ignoreFlagDescription)
	flags.BoolVar(&cfg.UseGitignore, gitignoreFlagName, false, gitignoreFlagDescription)
	flags.StringVarP(&cfg.OutputDir, outputFlagName, "o", "", outputFlagDescription)
	flags.BoolVarP(&cfg.Verbose, verboseFlagName, "v", false, verboseFlagDescription)
	flags.BoolVar(&cfg.NoColor, noColorFlagName, false, noColorFlagDescription)

	return cmd
}

// Execute runs the root command. On any error the message is written to
// stderr and the process exits with status 1.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
