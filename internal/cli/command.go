package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/hanjarecall/internal"
	"codeberg.org/snonux/hanjarecall/internal/cache"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hanjarecall",
		Short: "Hanja Flashcard Trainer",
		Long: `hanjarecall is a flashcard trainer for Hanja (Korean Chinese characters).

It loads character datasets from local spreadsheets or published Google
Sheets, keeps them in a local cache for offline study, and can export
them as Anki decks.

Examples:
  hanjarecall                                  # Launch interactive GUI (default)
  hanjarecall --file level1.xlsx               # Load and cache a local spreadsheet
  hanjarecall --sheet-url <url> --name Level1  # Load and cache a Google Sheet
  hanjarecall --list-cached                    # Show cached datasets
  hanjarecall --file level1.xlsx --anki        # Export dataset as Anki deck`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.hanjarecall.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", cache.DefaultDir(), "Dataset cache directory")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Load a local spreadsheet (.xlsx or .csv)")
	cmd.Flags().StringVar(&flags.SheetURL, "sheet-url", "", "Load a published Google Sheets URL")
	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Name for the cached dataset (default: file name or generated)")
	cmd.Flags().StringVar(&flags.Gid, "gid", flags.Gid, "Worksheet gid for Google Sheets export")
	cmd.Flags().BoolVar(&flags.ListCached, "list-cached", false, "List cached datasets and exit")
	cmd.Flags().BoolVar(&flags.ClearCache, "clear-cache", false, "Remove all cached datasets and exit")
	cmd.Flags().BoolVar(&flags.ArchiveCache, "archive", false, "Archive the cache directory and exit")
	cmd.Flags().IntVar(&flags.HanjaSeconds, "hanja-seconds", flags.HanjaSeconds, "Seconds to show the character side (1-10)")
	cmd.Flags().IntVar(&flags.MeaningSeconds, "meaning-seconds", flags.MeaningSeconds, "Seconds to show the reading/meaning side (1-10)")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the dataset as an Anki deck (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file for Anki export (default: <dataset>.apkg)")

	// Enrichment flags
	cmd.Flags().BoolVar(&flags.Enrich, "enrich", false, "Fill in missing readings and meanings using an AI provider")
	cmd.Flags().StringVar(&flags.EnrichProvider, "enrich-provider", flags.EnrichProvider, "Enrichment provider: openai or gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for enrichment")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for enrichment")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("cache.directory", cmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("sheet.gid", cmd.Flags().Lookup("gid"))
	viper.BindPFlag("study.hanja_seconds", cmd.Flags().Lookup("hanja-seconds"))
	viper.BindPFlag("study.meaning_seconds", cmd.Flags().Lookup("meaning-seconds"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("enrich.provider", cmd.Flags().Lookup("enrich-provider"))
	viper.BindPFlag("enrich.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("enrich.gemini_model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".hanjarecall" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hanjarecall")
	}

	// Environment variables
	viper.SetEnvPrefix("HANJARECALL")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("enrich.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("enrich.gemini_key")
}
