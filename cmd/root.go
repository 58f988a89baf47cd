// Package cmd provides the root command and CLI setup for preamble.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"preamble.dev/pkg/preamble/internal/adapter"
	"preamble.dev/pkg/preamble/internal/controller"
	"preamble.dev/pkg/preamble/internal/domain"
	m "preamble.dev/pkg/preamble/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore

// newWorkflow builds the workflow for one run of cmd. Tests replace it.
var newWorkflow = defaultWorkflow

var (
	extensionsFlag        []string
	excludePrefixesFlag   []string
	excludeSubstringsFlag []string
	markersFlag           []string
	modeFlag              string
	templateFlag          string
	templateNameFlag      string
	stopAtFlag            string
	noIgnoreFlag          bool
	runParallelFlag       int
	reportFlag            string
	logFileFlag           string
	verboseFlag           bool
)

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `Preamble propagates a license/copyright preamble across a source tree.

For every file matching the extension filter it resolves the nearest
LICENSE_HEADER found in the file's ancestor directories (or one fixed
template), and prepends it as a line-comment block unless the file already
carries a preamble marker. Vendored, build-output and git-ignored files are
skipped.`

const applyLongDescription = `Insert missing preambles below the given roots (default: current directory).

Prints one line per processed file: <path> TAB <Mutated|Skipped|Error>.
Exits non-zero when any file could not be processed.`

const checkLongDescription = `Report files below the given roots that lack a preamble, without
modifying anything. Exits non-zero when any file is missing its preamble or
could not be processed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "preamble",
		Short:        "License preamble propagation tool",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configLoadErr != nil {
				return fmt.Errorf("%w: reading %s: %w", domain.ErrConfig, configFileName, configLoadErr)
			}

			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringSliceVarP(&extensionsFlag, extensionFlagName, "e", defaultExtensions, "file extensions to process (can be repeated)")
	bindFlagToConfig(flags.Lookup(extensionFlagName), extensionsConfigKey)

	flags.StringArrayVar(&excludePrefixesFlag, excludePrefixFlagName, defaultExcludePrefixes, "exclude paths starting with prefix, relative to the root (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludePrefixFlagName), excludePrefixesConfigKey)

	flags.StringArrayVarP(&excludeSubstringsFlag, excludeSubstringFlagName, "x", defaultExcludeSubstrings, "exclude paths containing substring (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeSubstringFlagName), excludeSubstringsConfigKey)

	flags.StringVarP(&modeFlag, modeFlagName, "m", defaultMode, "preamble resolution: dynamic (nearest ancestor template) or fixed (one template)")
	bindFlagToConfig(flags.Lookup(modeFlagName), modeConfigKey)

	flags.StringVarP(&templateFlag, templateFlagName, "t", "", "template file used in fixed mode")
	bindFlagToConfig(flags.Lookup(templateFlagName), templateConfigKey)

	flags.StringVar(&templateNameFlag, templateNameFlagName, defaultTemplateName, "template file name looked up in ancestor directories")
	bindFlagToConfig(flags.Lookup(templateNameFlagName), templateNameConfigKey)

	flags.StringVar(&stopAtFlag, stopAtFlagName, "", "directory at which the ancestor search stops")
	bindFlagToConfig(flags.Lookup(stopAtFlagName), stopAtConfigKey)

	flags.StringArrayVar(&markersFlag, markerFlagName, defaultMarkers, "substring proving a file already has a preamble (can be repeated)")
	bindFlagToConfig(flags.Lookup(markerFlagName), markersConfigKey)

	flags.BoolVar(&noIgnoreFlag, noIgnoreFlagName, false, "do not consult git for ignored files")

	flags.IntVarP(&runParallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of files processed in parallel")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.StringVar(&reportFlag, reportFlagName, "", "write a YAML report of the run to this file")
	bindFlagToConfig(flags.Lookup(reportFlagName), reportConfigKey)

	flags.StringVar(&logFileFlag, logFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "debug logging and diffs in dry-run")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// defaultWorkflow wires the production adapters for cmd from the run's config.
func defaultWorkflow(cmd *cobra.Command, config m.RunConfig) domain.Workflow {
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))
	templateStore := adapter.NewLocalTemplateStore(config.TemplateName)
	oracle := adapter.NewGitIgnoreOracle(config.IgnoreCommand)

	return domain.NewWorkflow(fsAdapter, templateStore, oracle, reportStore, ui)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, domain.ErrConfig) || errors.Is(err, domain.ErrTemplateLoad) {
		return 2
	}

	return 1
}

// ExitError reports a run that completed with per-file failures.
type ExitError struct {
	Code    int
	Summary m.Summary
}

// Error implements error.
func (e *ExitError) Error() string {
	if e.Summary.Missing > 0 {
		return fmt.Sprintf("%d file(s) missing a preamble, %d error(s)", e.Summary.Missing, e.Summary.Errors)
	}

	return fmt.Sprintf("%d file(s) failed", e.Summary.Errors)
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
