// Package cmd provides the CLI commands for the payroll MCP server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratuspay/payroll-mcp/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "payroll-mcp",
	Short: "payroll-mcp - MCP server for the StratusPay payroll API",
	Long: `payroll-mcp exposes the StratusPay HR and payroll REST API as MCP tools.

The server is stateless and multi-tenant: every tool call carries its own
StratusPay access token (X-StratusPay-Access-Token header over HTTP, or the
STRATUSPAY_ACCESS_TOKEN environment variable in stdio mode), and a fresh
upstream client is built per request. No token is ever held in configuration.

Quick start:
  1. Optionally create a config file: payroll-mcp init
  2. Run: payroll-mcp serve

Configuration:
  Config is loaded from payroll-mcp.yaml in the current directory,
  $HOME/.payroll-mcp/, or /etc/payroll-mcp/.

  Environment variables can override config values with the PAYROLL_MCP_ prefix.
  Example: PAYROLL_MCP_SERVER_HTTP_ADDR=:9090

Commands:
  serve       Start the MCP server (HTTP or stdio)
  init        Write a starter configuration file
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./payroll-mcp.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
