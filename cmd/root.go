package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "marsdash",
	Short: "Live dashboard for Mars rover missions and photos",
	Long: `marsdash serves a single-page dashboard listing the configured Mars
rovers. Selecting a rover loads its mission details and photos from the
backend and keeps the page updated over a websocket.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".marsdash.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}
