package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/marsdash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize marsdash configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the backend, rover catalog and port, and writes a .marsdash.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
