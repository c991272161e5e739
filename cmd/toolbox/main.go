package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = cobra.Command{
	Use:          "toolbox",
	Short:        "toolbox is a small web toolbox of text transforms",
	Long:         "toolbox serves caesar, base64, sha256 and qr tools over an HTML form, a JSON API and MCP",
	Version:      version,
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file, default "+defaultConfigHint)
	rootCmd.AddCommand(serveCmd, mcpCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
