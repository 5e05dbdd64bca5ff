package main

import (
	"os"

	"github.com/spf13/cobra"

	"worklog/internal/interfaces/cli/migrate"
	"worklog/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worklog",
		Short: "Work log service for the ticket tracker",
		Long:  `The work log service records who works on which ticket and when, and writes time spent back to the tracker.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
