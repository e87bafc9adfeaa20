package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"massnet.org/hashlookup/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of hashcli",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion())
		return err
	},
}
