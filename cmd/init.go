package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"preamble.dev/pkg/preamble/internal/domain"
	m "preamble.dev/pkg/preamble/internal/model"
)

const initLongDescription = `Write preamble.yaml to the current directory with the effective settings
(defaults, environment and flags), ready for editing:

  paths.*           extensions, exclude_prefixes, exclude_substrings
  preamble.*        mode, template, template_name, stop_at, markers
  comments.tokens   line-comment token per file extension
  ignore.*          enabled, command
  run.*             parallel, dry_run, report
  log.*             filename, level and rotation

An existing file is left alone unless --force is given.`

var forceInitFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to preamble.yaml",
		Long:  initLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if forceInitFlag {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("%w: writing %s: %w", domain.ErrConfig, targetPath, err)
			}

			cmd.Println("wrote", targetPath)

			templateName := viper.GetString(templateNameConfigKey)
			if _, err := fsAdapter.FileInfo(cmd.Context(), m.Path(filepath.Join(configFolderPath, templateName))); err != nil {
				cmd.Printf("no %s here yet: add one next to the sources it should cover\n", templateName)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&forceInitFlag, "force", false, "overwrite an existing "+configFileName)

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
