package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotlog/internal/config"
)

// configCmd groups the settings commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Settings are stored in a TOML file, by default
$XDG_CONFIG_HOME/tarotlog/config.toml. Keys:

  language              zh-TW or en
  allow_reversed        true or false
  reversed_probability  0 to 1
  storage_backend       file, sqlite or memory
  data_dir              where readings are stored
  max_storage_bytes     storage quota (0 disables it)
  catalog_path          custom catalog JSON (empty uses the built-in one)
  images_dir            card images for terminal art
  log_level             debug, info, warn or error`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys {
			v, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, v)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetIn(configFilePath(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and data directory locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("config:", configFilePath())
		fmt.Println("data:  ", cfg.DataDirPath())
		fmt.Println("cache: ", config.GetCacheDir())
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configPathCmd)
}
