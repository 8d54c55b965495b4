package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/ytdigest/internal/domain/export"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRoot()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytdigest",
		Short:         "Summarize YouTube videos and playlists from their transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	root.PersistentFlags().Bool("log-json", false, "Log as JSON lines")

	analyze := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a video or playlist and write exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], false)
		},
	}
	addAnalysisFlags(analyze, "markdown")
	analyze.Flags().String("translate", "", "Translate the analysis into this language")
	analyze.Flags().String("prompt", "", "Extra instructions prepended to the analysis prompt")
	analyze.Flags().Bool("wordcloud", false, "Include word cloud data")
	analyze.Flags().Bool("raw", false, "Include the raw transcript")

	estimate := &cobra.Command{
		Use:   "estimate <url>",
		Short: "Estimate tokens and cost without calling the completion service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], true)
		},
	}
	addAnalysisFlags(estimate, "json")

	root.AddCommand(analyze, estimate, newAuthCmd())
	return root
}

func addAnalysisFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("detail", "standard", "Detail level: brief, standard or detailed")
	cmd.Flags().StringArray("format", []string{defaultFormat}, "Export format, one of "+strings.Join(export.Formats(), ", ")+" (repeatable)")
	cmd.Flags().String("out", "out", "Output directory")
	cmd.Flags().String("lang", "en", "Preferred caption language")

	// Hidden tuning flag (internal)
	cmd.Flags().Duration("timeout", defaultTimeout, "Overall run timeout")
	_ = cmd.Flags().MarkHidden("timeout")
}
