package cli

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/dslr/analysis"
)

func (a *app) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <dataset.csv>",
		Short: "Print count, mean, std, min, quartiles and max of every feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			return analysis.Describe(ds).Write(cmd.OutOrStdout())
		},
	}
}
