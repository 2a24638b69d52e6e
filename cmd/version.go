package cmd

import (
	"fmt"

	"llmpack/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd displays the current version of llmpack. The --short flag
// prints the bare version string only.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of llmpack",
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Println(v.Version)
		} else {
			fmt.Println(v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
