package cmd

import (
	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "List files missing a license preamble",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := runArgsFromFlags(args)
			if err != nil {
				return err
			}

			runArgs.Config.DryRun = false
			runArgs.Config.ShowDiff = false

			summary, err := newWorkflow(cmd, runArgs.Config).Check(cmd.Context(), runArgs)
			if err != nil {
				return err
			}

			return exitErrorFor(summary)
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
