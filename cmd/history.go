package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// historyCmd lists saved readings
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved readings, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		rs, err := a.Readings.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(rs)
		}
		printer().ReadingHistory(rs, time.Now())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one saved reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		r, err := a.Readings.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(r)
		}
		printer().Reading(r)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.PersistentFlags().Bool("json", false, "print as JSON")
	historyCmd.Flags().IntP("limit", "n", 20, "number of readings to list (0 lists all)")
}
