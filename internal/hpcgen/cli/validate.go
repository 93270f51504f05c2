package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hpcgen/internal/hpcgen/domain"
)

// NewValidateCmd checks a job configuration file without producing a
// descriptor: field validation happens while loading, then alignment and
// the cross-field consistency pass run exactly as generate would run them.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <job.json>",
		Short: "Validate a job configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := domain.FromJSON(args[0])
			if err != nil {
				return err
			}

			job.AlignDependentAttributes()
			if err := job.CheckConsistency(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (method %s, %d cores / %d tasks)\n",
				args[0], job.Method(), job.Resource().NumCores(), job.Resource().NumTasks())
			return nil
		},
	}
}
