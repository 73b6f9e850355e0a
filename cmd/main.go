package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"parallelstory/internal/cli/scheme/colours"
	"parallelstory/internal/config"
	"parallelstory/internal/story/reader"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := config.Init(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.ConfigureLogging(logrus.StandardLogger(), cfg.Log); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	app := reader.NewApp(cfg, os.Stdin, os.Stdout)

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Cancel()
		app.StopSpeech()
		fmt.Fprintln(app.Out(), "\n"+colours.Warning.Sprint("👋 Hasta luego! À bientôt! 📚"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "parallelstory",
		Short: "📖 Read stories side by side with their translation",
		Long: `
┌──────────────────────────────────────────┐
│  📚 Welcome to ParallelStory! 🌍         │
│  Learn a language one sentence at a time │
└──────────────────────────────────────────┘

ParallelStory shows a story in the language you are learning, one sentence
at a time. Move on and the translation of what you just read is revealed.
Highlighted words show their meaning on request, and any sentence can be
read aloud.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.StopSpeech()
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List available stories",
		Long:  "Display the built-in stories and the online library, if one is configured",
		Run:   app.ListStories,
	}

	// Read command
	readCmd := &cobra.Command{
		Use:   "read [story-id]",
		Short: "📖 Read a specific story",
		Long:  "Read a story by its ID, from a JSON file, or pick one from a list",
		Args:  cobra.MaximumNArgs(1),
		Run:   app.ReadStory,
	}

	// Random command
	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "🎲 Read a random story",
		Run:   app.ReadRandomStory,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices [language]",
		Short: "🎤 List speech voices",
		Long:  "List the voices the speech engine offers and which one a language would use",
		Run:   app.ShowVoices,
	}

	// Library commands
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "🏛️ Manage the online story library",
		Run:   app.LibraryStatus,
	}
	libraryCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the library cache state",
			Run:   app.LibraryStatus,
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Download the library again",
			Run:   app.RefreshLibrary,
		},
	)

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show current settings",
		Long:  "Show speech, library and reading settings",
		Run:   app.ConfigureSettings,
	}

	// Add flags
	listCmd.Flags().StringP("language", "l", "", "Filter by story language")
	readCmd.Flags().StringP("file", "f", "", "Read from a story or library JSON file")
	for _, cmd := range []*cobra.Command{readCmd, randomCmd} {
		cmd.Flags().BoolP("example", "e", false, "Show every step without waiting, with all translations")
		cmd.Flags().Bool("no-speech", false, "Disable read-aloud")
	}

	rootCmd.AddCommand(listCmd, readCmd, randomCmd, voicesCmd, libraryCmd, settingsCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}
