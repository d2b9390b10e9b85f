package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <report.json>",
	Short: "Print a report saved by score --output or the report menu",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, log := setup()

		asJSON, _ := cmd.Flags().GetBool("raw")
		if err := showReport(cmd.OutOrStdout(), args[0], asJSON); err != nil {
			log.Fatal("showing report", zap.String("filename", args[0]), zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("raw", false, "print the JSON report instead of the summary")
}

func showReport(w io.Writer, path string, asJSON bool) error {
	r, err := report.Load(path)
	if err != nil {
		return err
	}
	if asJSON {
		return r.WriteJSON(w)
	}
	return r.Render(w)
}
