package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ankiword/ankiword/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankiword",
		Short: "Interactive dictionary-to-Anki flashcard assistant",
		Long: `ankiword turns typed words into Anki flashcards.

It looks words up through translate-shell, downloads pronunciation audio,
opens reference pages in the browser, lets you edit the extracted fields
and submits the finished card to a running Anki instance via AnkiConnect.

Examples:
  ankiword                       # Interactive session
  ankiword --deck "English"      # Skip the deck selection prompt
  ankiword --batch words.txt     # Add cards for each word in a file`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ankiword.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", flags.AnkiURL, "AnkiConnect service URL")
	cmd.Flags().StringVar(&flags.ModelName, "model", flags.ModelName, "Anki note model (card template) name")
	cmd.Flags().StringVarP(&flags.DeckName, "deck", "d", "", "Deck name (skips the interactive deck selection)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Add cards for words from file (one per line), no prompts")
	cmd.Flags().StringVar(&flags.TransCommand, "trans-command", flags.TransCommand, "translate-shell binary")
	cmd.Flags().StringVarP(&flags.SourceLang, "source", "s", flags.SourceLang, "Source language code")
	cmd.Flags().StringVarP(&flags.TargetLang, "target", "t", flags.TargetLang, "Target language code")
	cmd.Flags().StringVar(&flags.TmpDir, "tmp-dir", flags.TmpDir, "Directory for staged media files")
	cmd.Flags().StringVar(&flags.BrowserCommand, "browser", flags.BrowserCommand, "Browser command for reference tabs")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip pronunciation audio download")
	cmd.Flags().BoolVar(&flags.SkipBrowser, "skip-browser", false, "Do not open reference tabs in the browser")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record submitted cards in the local history")
	cmd.Flags().BoolVar(&flags.EnrichExamples, "enrich-examples", false, "Generate example sentences via OpenAI when the dictionary has none")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
	viper.BindPFlag("anki.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("anki.deck", cmd.Flags().Lookup("deck"))
	viper.BindPFlag("trans.command", cmd.Flags().Lookup("trans-command"))
	viper.BindPFlag("trans.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("trans.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("trans.tmp_dir", cmd.Flags().Lookup("tmp-dir"))
	viper.BindPFlag("browser.command", cmd.Flags().Lookup("browser"))
	viper.BindPFlag("enrich.examples", cmd.Flags().Lookup("enrich-examples"))
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

		// Search config in home directory with name ".ankiword" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ankiword")
	}

	// Environment variables
	viper.SetEnvPrefix("ANKIWORD")
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
