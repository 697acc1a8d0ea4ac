package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replica-sync/internal/client"
)

func (c *cli) syncCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "sync <profile>",
		Short: "Synchronize a profile without the terminal UI",
		Long: "sync connects to both roots of the profile, prints the detected changes and\n" +
			"propagates them after confirmation. Conflicts are always skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headless := client.NewHeadless(c.app.NewSession, client.HeadlessOptions{
				Profile:   args[0],
				AssumeYes: assumeYes,
				Out:       cmd.OutOrStdout(),
				Prompter:  client.NewTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
			}, c.log)

			return c.app.Run(cmd.Context(), headless)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Propagate without asking for confirmation")

	return cmd
}
