package cmd

import (
	"tabkit/internal/cli/output"
	"tabkit/internal/version"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newOutput(cmd)
		if err != nil {
			return err
		}
		info := version.Get()
		switch out.Format() {
		case output.FormatTable:
			out.Println("tabkit " + info.String())
			out.Println(info.Full())
			return nil
		case output.FormatQuiet:
			return out.Write(info.Version)
		default:
			return out.Write(info)
		}
	},
}
