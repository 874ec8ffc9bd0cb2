package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/share"
	"github.com/arcanaland/tarotlog/internal/spread"
)

// drawCmd represents the draw command
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a tarot spread and save the reading",
	Long: `Draw shuffles a fresh deck, lays out a spread of one to nine cards and
prints an interpretation. Counts outside 1-9 are clamped.

Examples:
  tarotlog draw
  tarotlog draw --cards 3
  tarotlog draw -n 5 --no-reversed
  tarotlog draw -n 3 --reversed-probability 0.5 --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("cards")
		opts := a.DrawOptions(spread.Clamp(count))
		if noReversed, _ := cmd.Flags().GetBool("no-reversed"); noReversed {
			opts.AllowReversed = false
		}
		if cmd.Flags().Changed("reversed-probability") {
			p, _ := cmd.Flags().GetFloat64("reversed-probability")
			if p < 0 || p > 1 {
				return fmt.Errorf("reversed probability must be between 0 and 1, got %v", p)
			}
			opts.ReversedProbability = p
		}

		result, err := a.Readings.Read(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(result)
		}
		printer().Reading(result)

		if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
			return copyReading(cmd, result)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(drawCmd)

	drawCmd.Flags().IntP("cards", "n", 1, "number of cards to draw (1-9)")
	drawCmd.Flags().Bool("no-reversed", false, "never draw reversed cards")
	drawCmd.Flags().Float64("reversed-probability", 0, "chance of each card being reversed (0-1)")
	drawCmd.Flags().Bool("json", false, "print the reading as JSON")
	drawCmd.Flags().Bool("copy", false, "copy the shareable text to the clipboard")
}

// copyReading composes r under the stored privacy settings and copies it
func copyReading(cmd *cobra.Command, r record.ReadingResult) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	prefs, err := a.Store.Preferences(cmd.Context())
	if err != nil {
		return err
	}
	if err := share.Copy(share.Compose(r, prefs.Privacy, cfg.Lang())); err != nil {
		return err
	}
	fmt.Println("📋 copied")
	return nil
}
