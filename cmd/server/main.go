package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-gate",
		Short: "Session gate and Google login for the payments portal",
		Long: `portal-gate fronts the payments portal. It signs users in with the
configured identity provider, issues an HMAC signed session cookie and
admits only requests that carry a valid one.

Running it without a subcommand starts the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
