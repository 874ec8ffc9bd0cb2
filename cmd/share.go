package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/share"
)

// shareCmd prints or copies a reading as shareable text
var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Format a reading for sharing",
	Long: `Share formats a saved reading (by id) as plain text for posting. Without an
id it shares today's daily card. What is included follows your privacy
settings; the flags override them for this run, or save them with --save.

Examples:
  tarotlog share
  tarotlog share 5f0c... --copy
  tarotlog share --name Mira --no-interpretation --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := getApp(ctx)
		if err != nil {
			return err
		}

		var r record.ReadingResult
		if len(args) == 1 {
			if r, err = a.Readings.Get(ctx, args[0]); err != nil {
				return err
			}
		} else {
			rec, err := a.Daily.TodayCard(ctx)
			if err != nil {
				return fmt.Errorf("no daily card drawn today, run 'tarotlog daily' first: %w", err)
			}
			aspects := rec.Aspects
			r = record.ReadingResult{
				Timestamp: rec.Timestamp,
				Type:      record.Daily,
				Cards:     []card.DrawnCard{rec.Card},
				Aspects:   &aspects,
			}
		}

		prefs, err := a.Store.Preferences(ctx)
		if err != nil {
			return err
		}
		privacy := prefs.Privacy
		flags := cmd.Flags()
		if flags.Changed("name") {
			privacy.DisplayName, _ = flags.GetString("name")
		}
		if v, _ := flags.GetBool("no-date"); v {
			privacy.IncludeDate = false
		}
		if v, _ := flags.GetBool("no-interpretation"); v {
			privacy.IncludeInterpretation = false
		}
		if v, _ := flags.GetBool("no-aspects"); v {
			privacy.IncludeAspects = false
		}
		if v, _ := flags.GetBool("all"); v {
			privacy.IncludeDate, privacy.IncludeInterpretation, privacy.IncludeAspects = true, true, true
		}
		if save, _ := flags.GetBool("save"); save && privacy != prefs.Privacy {
			prefs.Privacy = privacy
			if err := a.Store.SetPreferences(ctx, prefs); err != nil {
				return err
			}
		}

		text := share.Compose(r, privacy, cfg.Lang())
		fmt.Println(text)
		if copyOut, _ := flags.GetBool("copy"); copyOut {
			if err := share.Copy(text); err != nil {
				return err
			}
			fmt.Println("📋 copied")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(shareCmd)

	shareCmd.Flags().Bool("copy", false, "copy the text to the clipboard")
	shareCmd.Flags().String("name", "", "display name shown in the title")
	shareCmd.Flags().Bool("no-date", false, "leave out the date")
	shareCmd.Flags().Bool("no-interpretation", false, "leave out the interpretation")
	shareCmd.Flags().Bool("no-aspects", false, "leave out the daily aspects")
	shareCmd.Flags().Bool("all", false, "include date, interpretation and aspects")
	shareCmd.Flags().Bool("save", false, "remember these privacy settings")
}
