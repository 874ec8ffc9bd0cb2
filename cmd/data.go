package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// dataCmd groups the storage maintenance commands
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Back up, restore and clean up stored readings",
}

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every reading, daily card and preference as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		data, err := a.Store.Export(cmd.Context())
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeOutput(output, data)
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge a previous export into the stored data",
	Long: `Import merges an export file into the stored data. Readings and daily cards
already present are kept; entries from the file are added by id and date.
A malformed file is rejected without changing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading %s: %w", args[0], err)
		}
		stats, err := a.Store.Import(cmd.Context(), blob)
		if err != nil {
			return err
		}
		printer().Imported(stats.Readings, stats.DailyCards)
		return nil
	},
}

var dataClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored reading, daily card and preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes && !confirm("Delete all stored data?") {
			return nil
		}
		return a.Store.Clear(cmd.Context())
	},
}

var dataCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove readings older than the retention window now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		n, err := a.Store.Cleanup(cmd.Context())
		if err != nil {
			return err
		}
		printer().Removed(n)
		return nil
	},
}

var dataUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show how much of the storage quota is in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd.Context())
		if err != nil {
			return err
		}
		used, err := a.Usage(cmd.Context())
		if err != nil {
			return err
		}
		printer().Usage(used, a.Config.MaxStorageBytes)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataClearCmd, dataCleanupCmd, dataUsageCmd)

	dataExportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	dataClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

// confirm asks a yes/no question on stdin
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
