// Package cli implements intakectl, the operator command line for the
// submissions collection.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"intake/internal/platform/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataFile string
	Format   string // "text" | "json" | "yaml"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for intakectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "intakectl",
		Short: "Inspect and check personal data submissions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DataFile, "data-file", config.FromEnv().SubmissionsPath(), "path to the submissions JSON document")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}
