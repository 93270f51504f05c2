package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hpcgen/internal/hpcgen/domain"
	"hpcgen/internal/hpcgen/render"
	"hpcgen/pkg/logger"
)

// NewGenerateCmd renders a job configuration file into the dispatch
// descriptor. Jobs still carrying the unset name sentinel get a generated
// name so the daemon never sees two anonymous submissions collide.
func NewGenerateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate <job.json>",
		Short: "Render a job configuration into a dispatch descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := domain.FromJSON(args[0])
			if err != nil {
				return err
			}

			if job.JobName() == domain.DefaultJobName {
				name := "job-" + uuid.NewString()[:8]
				job.SetJobName(name)
				logger.Info("job name not set, generated one", "job_name", name)
			}

			job.AlignDependentAttributes()
			if err := job.CheckConsistency(); err != nil {
				return err
			}

			target := output
			if target == "" {
				target = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + render.DefaultDescriptorExt
			}
			written, err := render.SaveAreg(job, target)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (method %s)\n", written, job.Method())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Descriptor output path (default: input path with the descriptor extension)")
	return cmd
}
