package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/validator"
)

// validateCmd represents the catalog validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog JSON file",
	Long: `Validate checks that a catalog file lists all 78 cards with unique ids,
consistent suits and numbers, and names and meanings in both languages.
With --images it also checks that every card image exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := args[0]

		// Check if path exists
		if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", catalogPath)
		}

		v := validator.NewValidator(catalogPath)
		v.ImagesDir, _ = cmd.Flags().GetString("images")
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		printValidation(catalogPath, results)
		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("images", "", "images directory to check card images against")
}

// printValidation displays validation results
func printValidation(path string, results validator.ValidationResults) {
	fmt.Println("Validation Results:")
	fmt.Println("-------------------")

	if results.Valid() {
		fmt.Printf("✅ Catalog '%s' is valid.\n", path)
	} else {
		fmt.Printf("❌ Catalog '%s' has %d validation errors:\n", path, len(results.Errors))
		for i, err := range results.Errors {
			fmt.Printf("%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Printf("%d. %s\n", i+1, warn)
		}
	}
}
