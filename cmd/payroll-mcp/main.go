package main

import "github.com/stratuspay/payroll-mcp/cmd/payroll-mcp/cmd"

func main() {
	cmd.Execute()
}
