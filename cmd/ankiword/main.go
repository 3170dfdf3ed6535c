package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ankiword/ankiword/internal/cli"
	"github.com/ankiword/ankiword/internal/session"
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
	rootCmd.SilenceUsage = true

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	// An interrupt cancels the context; the loop exits cleanly on the
	// next iteration and in-flight external calls are aborted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(buildSessionConfig(flags), log)

	if flags.BatchFile != "" {
		return sess.RunBatch(ctx, flags.BatchFile)
	}
	return sess.Run(ctx)
}

// buildSessionConfig resolves the effective configuration. Bound keys go
// through viper so config file and environment values apply when the flag
// was not set explicitly.
func buildSessionConfig(flags *cli.Flags) *session.Config {
	return &session.Config{
		AnkiURL:   viper.GetString("anki.url"),
		ModelName: viper.GetString("anki.model"),
		DeckName:  viper.GetString("anki.deck"),

		TransCommand: viper.GetString("trans.command"),
		SourceLang:   viper.GetString("trans.source"),
		TargetLang:   viper.GetString("trans.target"),
		TmpDir:       viper.GetString("trans.tmp_dir"),

		BrowserCommand: viper.GetString("browser.command"),

		SkipAudio:   flags.SkipAudio,
		SkipBrowser: flags.SkipBrowser,
		NoHistory:   flags.NoHistory,

		EnrichExamples: viper.GetBool("enrich.examples"),
		OpenAIKey:      cli.GetOpenAIKey(),
	}
}
