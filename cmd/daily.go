package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/daily"
)

// dailyCmd draws or shows today's card
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Draw today's card, or show it if already drawn",
	Long: `Daily draws one card per calendar day and describes what it means for your
body, emotions and spirit today. Running it again on the same day shows the
same card.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		rec, err := a.Daily.DrawTodayCard(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(rec)
		}
		printer().DailyCard(rec, cardArt(a, rec.Card.Card))
		return nil
	},
}

var dailyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past daily cards, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := a.Daily.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(recs)
		}
		printer().DailyHistory(recs)
		return nil
	},
}

var dailyStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show how many consecutive days you have drawn a card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		n, err := a.Daily.Streak(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var dailyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export daily card history as JSON or text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("format")
		format, err := daily.ParseFormat(name)
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")

		data, err := a.Daily.ExportHistory(cmd.Context(), format, days)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeOutput(output, data)
	},
}

func init() {
	RootCmd.AddCommand(dailyCmd)
	dailyCmd.AddCommand(dailyHistoryCmd, dailyStreakCmd, dailyExportCmd)

	dailyCmd.Flags().Bool("json", false, "print the card as JSON")
	dailyHistoryCmd.Flags().IntP("limit", "n", daily.DefaultHistoryLimit, "number of days to list")
	dailyHistoryCmd.Flags().Bool("json", false, "print the history as JSON")
	dailyExportCmd.Flags().StringP("format", "f", string(daily.FormatJSON), "export format (json or text)")
	dailyExportCmd.Flags().Int("days", 0, "only export the most recent days (0 exports everything)")
	dailyExportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	printer().Wrote(path, len(data))
	return nil
}
