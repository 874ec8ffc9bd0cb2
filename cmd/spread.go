package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/spread"
)

// spreadsCmd lists the spread layouts
var spreadsCmd = &cobra.Command{
	Use:   "spreads [count]",
	Short: "List the spreads used for each card count",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frameworks := spread.All()
		if len(args) == 1 {
			n, err := parseCount(args[0])
			if err != nil {
				return err
			}
			frameworks = []spread.Framework{spread.For(n)}
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(frameworks)
		}
		printer().Frameworks(frameworks)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(spreadsCmd)
	spreadsCmd.Flags().Bool("json", false, "print as JSON")
}

// parseCount parses a card count argument, clamping it to 1-9
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid card count %q", s)
	}
	return spread.Clamp(n), nil
}
