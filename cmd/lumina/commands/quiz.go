// ABOUTME: CLI commands to generate and list quizzes
// ABOUTME: Quizzes are built from indexed files and stored locally
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage/sqlite"
)

var (
	quizCount      int
	quizDifficulty string
)

// NewQuizCmd creates the quiz command with its subcommands
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate and list quizzes",
		Long:  `Generate quizzes from indexed notes and list previously generated ones.`,
	}

	generate := &cobra.Command{
		Use:   "generate <subject> <filename>...",
		Short: "Generate a quiz from indexed files",
		Long: `Generate a quiz from one or more indexed files.

Questions mix multiple-choice and open-ended forms at the requested
difficulty.

Examples:
  lumina quiz generate biology cells.md
  lumina quiz generate --count 10 --difficulty hard biology cells.md membranes.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: runQuizGenerate,
	}
	generate.Flags().IntVar(&quizCount, "count", 5, "Number of questions")
	generate.Flags().StringVar(&quizDifficulty, "difficulty", "medium", "Question difficulty: easy, medium, or hard")

	list := &cobra.Command{
		Use:   "list <subject>",
		Short: "List a subject's quizzes",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuizList,
	}

	cmd.AddCommand(generate, list)
	return cmd
}

func runQuizGenerate(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(quizCount, "count"); err != nil {
		return err
	}
	subject := args[0]
	files := args[1:]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	quiz, err := svc.quizzes.Generate(cmd.Context(), subject, files, quizCount, quizDifficulty)
	if err != nil {
		return fmt.Errorf("generating quiz: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(quiz, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d questions)\n\n", quiz.Title, len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q.Question)
		if q.Type == models.QuestionMultipleChoice {
			for j, opt := range q.Options {
				fmt.Fprintf(cmd.OutOrStdout(), "   %c) %s\n", 'a'+j, opt)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runQuizList(cmd *cobra.Command, args []string) error {
	db, err := openCardDB()
	if err != nil {
		return err
	}
	defer db.Close()

	quizzes, err := sqlite.NewQuizStore(db).BySubject(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing quizzes: %w", err)
	}

	if len(quizzes) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No quizzes for subject: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(quizzes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tQUESTIONS\tCREATED\n")
	fmt.Fprintf(w, "--\t-----\t---------\t-------\n")
	for _, quiz := range quizzes {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncate(quiz.ID, 12),
			truncate(quiz.Title, 30),
			len(quiz.Questions),
			formatTime(quiz.CreatedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d quiz(zes)\n", len(quizzes))
	}
	return nil
}
