package cli

import (
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"intake/internal/platform/logger"
	"intake/internal/submission"
	"intake/internal/submission/service"
	"intake/internal/submission/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored submission in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewWithWriter(cmd.ErrOrStderr(), "warn", "text")
			svc := service.New(store.NewFileStore(rootOpts.DataFile), service.WithLogger(log))

			subs, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, subs, func(w io.Writer) error {
				return writeTable(w, subs)
			})
		},
	}
}

func writeTable(w io.Writer, subs []submission.Submission) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := printf(tw, "SUBMITTED AT\tNAME\tEMAIL\tAGE\tGENDER\n"); err != nil {
		return err
	}
	for _, sub := range subs {
		if err := printf(tw, "%s\t%s\t%s\t%d\t%s\n",
			sub.SubmittedAt, sub.Data.Name, sub.Data.Email, sub.Data.Age, sub.Data.Gender); err != nil {
			return err
		}
	}
	return tw.Flush()
}
