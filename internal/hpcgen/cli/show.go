package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hpcgen/internal/hpcgen/domain"
)

// NewShowCmd prints the effective submission parameters of a job file,
// including the derived quantities and the selected method.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <job.json>",
		Short: "Show the effective submission parameters of a job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := domain.FromJSON(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rc := job.Resource()

			fmt.Fprintf(out, "Job:        %s\n", job.JobName())
			fmt.Fprintf(out, "Cluster:    %s\n", job.ClusterName())
			fmt.Fprintf(out, "Product:    %s\n", job.ProductFullPath())
			fmt.Fprintf(out, "Method:     %s (code %d)\n", job.Method(), job.Method().Code())
			fmt.Fprintf(out, "Cores:      %d on %d node(s), %d task(s), %d core(s)/task\n",
				rc.NumCores(), rc.NumNodes(), rc.NumTasks(), rc.CoresPerTask())
			if v, ok := rc.NumGPUs(); ok {
				fmt.Fprintf(out, "GPUs:       %d\n", v)
			} else {
				fmt.Fprintln(out, "GPUs:       (not set)")
			}
			if v, ok := rc.MaxTasksPerNode(); ok {
				fmt.Fprintf(out, "Task cap:   %d per node\n", v)
			} else {
				fmt.Fprintln(out, "Task cap:   (no limit)")
			}
			fmt.Fprintf(out, "RAM:        %d%% limit, %g GB/core\n", rc.RAMLimit(), rc.RAMPerCore())
			fmt.Fprintf(out, "Exclusive:  %t\n", rc.Exclusive())
			return nil
		},
	}
}
