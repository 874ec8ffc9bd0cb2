package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/trend"
)

// trendsCmd analyzes recent daily cards
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Analyze patterns in your recent daily cards",
	Long: `Trends looks at your most recent daily cards and reports suit and element
balance, how often cards came up reversed, recurring keywords and the tone of
each aspect, with a short summary and advice.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")
		analysis, err := a.Daily.AnalyzeTrends(cmd.Context(), days)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(analysis)
		}
		printer().Analysis(analysis)
		return nil
	},
}

var trendsCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the most recent period with the one before it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		current, _ := cmd.Flags().GetInt("current")
		previous, _ := cmd.Flags().GetInt("previous")
		c, err := a.Daily.CompareTrendPeriods(cmd.Context(), current, previous)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(c)
		}
		printer().Comparison(c)
		return nil
	},
}

var trendsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Compare this month so far with last month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		m, err := a.Daily.MonthlyTrends(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(m)
		}
		printer().Monthly(m)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(trendsCmd)
	trendsCmd.AddCommand(trendsCompareCmd, trendsMonthlyCmd)

	trendsCmd.PersistentFlags().Bool("json", false, "print the report as JSON")
	trendsCmd.Flags().IntP("days", "d", trend.DefaultDays, "number of recent draws to analyze")
	trendsCompareCmd.Flags().Int("current", trend.DefaultDays, "draws in the current period")
	trendsCompareCmd.Flags().Int("previous", trend.DefaultDays, "draws in the previous period")
}
