// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the lumina command tree for ingesting, querying and reviewing notes
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗     ██╗   ██╗███╗   ███╗██╗███╗   ██╗ █████╗
██║     ██║   ██║████╗ ████║██║████╗  ██║██╔══██╗
██║     ██║   ██║██╔████╔██║██║██╔██╗ ██║███████║
██║     ██║   ██║██║╚██╔╝██║██║██║╚██╗██║██╔══██║
███████╗╚██████╔╝██║ ╚═╝ ██║██║██║ ╚████║██║  ██║
╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: "AI study assistant over your own notes",
		Long: banner + `

Lumina indexes your study notes and answers questions from them,
generates flashcards and quizzes, and schedules reviews with
spaced repetition.

Notes are chunked, embedded and stored per subject; everything the
assistant says is grounded in material you ingested.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, or table")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(
		NewIngestCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewDeleteCmd(),
		NewCardsCmd(),
		NewReviewCmd(),
		NewQuizCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
