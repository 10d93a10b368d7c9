package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/hanjarecall/internal/archive"
	"codeberg.org/snonux/hanjarecall/internal/cli"
	"codeberg.org/snonux/hanjarecall/internal/models"
	"codeberg.org/snonux/hanjarecall/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.ArchiveCache {
		if err := archive.ArchiveCache(flags.CacheDir); err != nil {
			return fmt.Errorf("failed to archive cache: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	// Create processor
	proc := processor.NewProcessor(flags)

	// Handle cache maintenance flags
	if flags.ListCached {
		return proc.ListCached()
	}
	if flags.ClearCache {
		return proc.ClearCache()
	}

	// Handle dataset loading
	ctx := cmd.Context()
	switch {
	case flags.File != "":
		cards, name, err := proc.LoadFile(ctx)
		if err != nil {
			return err
		}
		if flags.GenerateAnki {
			fmt.Printf("\nGenerating Anki deck...\n")
			outputPath, err := proc.GenerateAnkiFile(cards, name)
			if err != nil {
				return err
			}
			fmt.Printf("Anki deck created: %s\n", outputPath)
		}
		return nil

	case flags.SheetURL != "":
		cards, name, err := proc.LoadSheet(ctx)
		if err != nil {
			return err
		}
		if flags.GenerateAnki {
			fmt.Printf("\nGenerating Anki deck...\n")
			outputPath, err := proc.GenerateAnkiFile(cards, name)
			if err != nil {
				return err
			}
			fmt.Printf("Anki deck created: %s\n", outputPath)
		}
		return nil

	default:
		// Without a source, --anki exports from the cache directly
		if flags.GenerateAnki {
			fmt.Printf("Generating Anki deck from cache...\n")
			outputPath, err := proc.ExportCached()
			if err != nil {
				return err
			}
			fmt.Printf("Anki deck created: %s\n", outputPath)
			return nil
		}

		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
