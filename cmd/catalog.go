package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/catalog"
	"github.com/arcanaland/tarotlog/internal/config"
	"github.com/arcanaland/tarotlog/internal/validator"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and customize the card catalog",
	Long: `Commands for the 78-card catalog. The built-in catalog is used unless
catalog_path points at a custom one.`,
}

// catalogListCmd lists the cards
var catalogListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the cards in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		lang := cfg.Lang()

		cards := a.Catalog.Cards()
		if name, _ := cmd.Flags().GetString("suit"); name != "" {
			suit := card.Suit(strings.ToLower(name))
			if !suit.Valid() {
				return fmt.Errorf("unknown suit %q (use major, cups, wands, swords or pentacles)", name)
			}
			cards = a.Catalog.BySuit(suit)
		}

		for _, c := range cards {
			fmt.Printf("  %-28s %s\n", c.ID, c.Name.In(lang))
		}
		return nil
	},
}

// catalogInitCmd writes the built-in catalog out for editing
var catalogInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in catalog to a file for customizing",
	Long: `Init writes the built-in catalog JSON to path (default cards.json in the data
directory) so it can be edited and activated with 'tarotlog catalog use'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(cfg.DataDirPath(), "cards.json")
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
		data := catalog.Embedded()
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("error writing catalog: %w", err)
		}
		printer().Wrote(path, len(data))
		return nil
	},
}

// catalogUseCmd activates a custom catalog
var catalogUseCmd = &cobra.Command{
	Use:   "use [path]",
	Short: "Validate a catalog file and make it the active catalog",
	Long: `Use validates a catalog file and stores its path as catalog_path. Pass
"builtin" to go back to the built-in catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "builtin" {
			if err := config.SetIn(configFilePath(), "catalog_path", ""); err != nil {
				return err
			}
			fmt.Println("Using the built-in catalog")
			return nil
		}

		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		results, err := validator.NewValidator(path).Validate()
		if err != nil {
			return err
		}
		if !results.Valid() {
			printValidation(path, results)
			return fmt.Errorf("validation failed")
		}
		if _, err := catalog.LoadFile(path); err != nil {
			return err
		}

		if err := config.SetIn(configFilePath(), "catalog_path", path); err != nil {
			return err
		}
		fmt.Printf("Catalog set to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogInitCmd, catalogUseCmd)

	catalogListCmd.Flags().StringP("suit", "s", "", "only list one suit")
	catalogInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
}
