package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stratuspay/payroll-mcp/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration file",
	Long: `Write a starter payroll-mcp.yaml with all settings at their defaults.

The file intentionally contains no credentials: access tokens always arrive
per-request (HTTP) or from the environment (stdio).

Examples:
  # Write ./payroll-mcp.yaml
  payroll-mcp init

  # Write to a specific path
  payroll-mcp init /etc/payroll-mcp/payroll-mcp.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "payroll-mcp.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	var cfg config.Config
	cfg.SetDefaults()

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	header := []byte("# payroll-mcp configuration.\n" +
		"# Access tokens are NOT configured here: HTTP clients send\n" +
		"# X-StratusPay-Access-Token per request; stdio mode reads\n" +
		"# STRATUSPAY_ACCESS_TOKEN from the environment.\n")

	if err := os.WriteFile(path, append(header, out...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
