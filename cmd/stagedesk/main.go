package main

import (
	"os"

	"github.com/spf13/cobra"

	"stagedesk/internal/interfaces/cli/migrate"
	"stagedesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagedesk",
		Short: "StageDesk - support ticket workflow backend",
		Long:  `StageDesk tracks support tickets between the growth and operations teams, with assignment, attachments and an approval-gated deletion flow.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
