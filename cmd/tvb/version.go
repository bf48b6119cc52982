package main

import (
	"github.com/spf13/cobra"
)

// appVersion is the release version, bumped on tagged releases.
const appVersion = "1.0.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}
