package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a card's meanings, with terminal art when images are configured",
	Long: `Show displays both orientations of a tarot card. Use canonical card IDs like
'major_arcana.00' or 'minor_arcana.wands.ace' (see 'tarotlog catalog ls').

When images_dir is set, the card image is converted to ANSI art and cached
under $XDG_CACHE_HOME/tarotlog.

Examples:
  tarotlog catalog show major_arcana.00
  tarotlog catalog show --lang en minor_arcana.wands.ace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		c, err := a.Catalog.Card(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(c)
		}

		art := ""
		if noArt, _ := cmd.Flags().GetBool("no-art"); !noArt {
			art = cardArt(a, c)
		}
		printer().Card(c, art)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "print the card as JSON")
	showCmd.Flags().Bool("no-art", false, "do not render the card image")
}
