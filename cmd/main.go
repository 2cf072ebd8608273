// file: cmd/main.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dos33disk/cmd/add"
	"dos33disk/cmd/create"
	"dos33disk/cmd/delete"
	"dos33disk/cmd/extract"
	"dos33disk/cmd/info"
	"dos33disk/cmd/list"
	"dos33disk/cmd/verify"
	"dos33disk/internal/config"
	"dos33disk/internal/logger"
)

// Version is set at build time via -ldflags
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dos33disk",
	Short: "Create and manipulate Apple II DOS 3.3 disk images",
	Long: `dos33disk builds, inspects and verifies 5.25" DOS 3.3 floppy disk
images (.dsk). It formats fresh images, adds and extracts files, lists
the catalog, and audits filesystem consistency.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logConfig := logger.Config{
			Debug:     config.Instance.Debug,
			LogFormat: config.Instance.LogFormat,
		}
		if cmd.Flags().Changed("debug") {
			logConfig.Debug, _ = cmd.Flags().GetBool("debug")
		}
		if cmd.Flags().Changed("log-format") {
			logConfig.LogFormat, _ = cmd.Flags().GetString("log-format")
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if config.ConfigLoaded {
			logger.Debug("configuration file loaded")
		}
		return nil
	},
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dos33disk %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches . and $HOME/.config/dos33disk)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "human", "log format: human or json")

	rootCmd.AddCommand(create.Cmd)
	rootCmd.AddCommand(add.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(extract.Cmd)
	rootCmd.AddCommand(delete.Cmd)
	rootCmd.AddCommand(verify.Cmd)
	rootCmd.AddCommand(info.Cmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
