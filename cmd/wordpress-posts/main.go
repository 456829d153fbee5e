// cmd/wordpress-posts/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordpress-posts",
		Short:         "WordPress post tools over MCP stdio and Zeebe job workers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config yaml (defaults to configs/config.yaml when present)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newWorkerCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
