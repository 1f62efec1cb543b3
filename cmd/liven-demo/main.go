package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liven-demo",
		Short: "Demo server for the Liven progressive-enhancement engine",
		Long: `liven-demo runs a small site showing Liven end to end:

  • a server-rendered page with marked link and form triggers
  • JSON API endpoints speaking the envelope contract
  • the live WebSocket endpoint streaming DOM patches
  • Prometheus metrics at /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("liven-demo %s (%s)\n", version, commit)
		},
	}
}
