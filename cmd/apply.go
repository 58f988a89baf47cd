package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"preamble.dev/pkg/preamble/internal/domain"
	m "preamble.dev/pkg/preamble/internal/model"
)

var (
	dryRunFlag bool
	diffFlag   bool
)

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Insert missing license preambles",
		Long:  applyLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := runArgsFromFlags(args)
			if err != nil {
				return err
			}

			runArgs.Config.ShowDiff = runArgs.Config.DryRun && (diffFlag || viper.GetBool(logVerboseKey))

			summary, err := newWorkflow(cmd, runArgs.Config).Apply(cmd.Context(), runArgs)
			if err != nil {
				return err
			}

			return exitErrorFor(summary)
		},
	}

	cmd.Flags().BoolVarP(&dryRunFlag, dryRunFlagName, "n", false, "report what would change without writing files")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), dryRunConfigKey)
	cmd.Flags().BoolVar(&diffFlag, diffFlagName, false, "print a unified diff for every file that would change (dry-run only)")

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

// runArgsFromFlags snapshots config and flags into the arguments of one run.
func runArgsFromFlags(args []string) (domain.RunArgs, error) {
	config, err := runConfigFromViper(parsePaths(args))
	if err != nil {
		return domain.RunArgs{}, err
	}

	if noIgnoreFlag {
		config.IgnoreEnabled = false
	}

	return domain.RunArgs{
		Config: config,
		Report: m.Path(viper.GetString(reportConfigKey)),
	}, nil
}

func exitErrorFor(summary m.Summary) error {
	if !summary.Failed() {
		return nil
	}

	return &ExitError{Code: 1, Summary: summary}
}
