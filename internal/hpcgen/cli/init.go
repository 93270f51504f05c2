package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hpcgen/internal/hpcgen/domain"
)

// NewInitCmd writes a starter job configuration built from the tool
// defaults, ready to edit and feed back into generate.
func NewInitCmd() *cobra.Command {
	var clusterName string

	cmd := &cobra.Command{
		Use:   "init <job.json>",
		Short: "Write a starter job configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := []domain.Option{
				domain.WithClusterName(cfg.Defaults.ClusterName),
				domain.WithMonitor(cfg.Defaults.MonitorProgress),
				domain.WithWaitForLicense(cfg.Defaults.WaitForLicense),
			}
			job := domain.New(cfg.ProductPathResolver(), opts...)

			rc := job.Resource()
			if err := rc.SetNumCores(cfg.Defaults.NumCores); err != nil {
				return err
			}
			if err := rc.SetNumNodes(cfg.Defaults.NumNodes); err != nil {
				return err
			}
			if err := job.SetNumTasks(cfg.Defaults.NumTasks); err != nil {
				return err
			}
			if err := rc.SetRAMLimit(cfg.Defaults.RAMLimit); err != nil {
				return err
			}
			if err := rc.SetRAMPerCore(cfg.Defaults.RAMPerCore); err != nil {
				return err
			}
			if clusterName != "" {
				job.SetClusterName(clusterName)
			}

			if err := job.ToJSON(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&clusterName, "cluster", "", "Cluster name override")
	return cmd
}
