package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotlog/internal/app"
	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/config"
	"github.com/arcanaland/tarotlog/internal/logging"
	"github.com/arcanaland/tarotlog/internal/render"
)

var (
	configPath string
	langFlag   string
	verbose    bool

	cfg         *config.Config
	logger      = zap.NewNop()
	application *app.App
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tarotlog",
	Short: "Draw tarot readings and keep a daily card journal",
	Long: `Tarotlog draws tarot spreads of one to nine cards, keeps a once-a-day card
with physical, emotional and spiritual guidance, and analyzes the trends in
your daily draws over time.

Readings and daily cards are stored locally (see 'tarotlog config').`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			if err := application.Close(); err != nil {
				logger.Warn("error closing storage", zap.Error(err))
			}
			application = nil
		}
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tarotlog/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "output language (zh-TW or en)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}

// loadConfig reads the config file and builds the logger. Flags override
// file values for this run only.
func loadConfig() error {
	var err error
	cfg, err = config.LoadConfigFrom(configFilePath())
	if err != nil {
		return err
	}

	if langFlag != "" {
		lang, err := card.ParseLang(langFlag)
		if err != nil {
			return err
		}
		cfg.Language = string(lang)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	logger, err = logging.New(level)
	if err != nil {
		return err
	}
	logger.Debug("loaded config", zap.String("path", configFilePath()))
	return nil
}

// getApp opens the application on first use. An application opened under
// an earlier config is closed and replaced.
func getApp(ctx context.Context) (*app.App, error) {
	if application != nil {
		if application.Config == cfg {
			return application, nil
		}
		if err := application.Close(); err != nil {
			logger.Warn("error closing storage", zap.Error(err))
		}
		application = nil
	}
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	application = a
	return a, nil
}

func printer() *render.Printer {
	return render.NewPrinter(os.Stdout, cfg.Lang(), render.TerminalWidth(os.Stdout))
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

// cardArt returns the terminal art for c, or an empty string when no images
// are configured or the image cannot be converted
func cardArt(a *app.App, c card.Card) string {
	if a.Config.ImagesDir == "" {
		return ""
	}
	art, err := render.CardArt(a.Config.ImagesDir, a.ArtCacheDir(), c)
	if err != nil {
		logger.Debug("no card art", zap.String("card", c.ID), zap.Error(err))
		return ""
	}
	return art
}
