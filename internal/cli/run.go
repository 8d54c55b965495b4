package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forPelevin/ytdigest/internal/pipeline"
	"github.com/forPelevin/ytdigest/internal/ports/adapters/openrouter"
	"github.com/forPelevin/ytdigest/internal/types"
)

const defaultTimeout = 30 * time.Minute

func run(cmd *cobra.Command, input string, estimateOnly bool) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	log := newLogger(cmd.ErrOrStderr(), verbose, logJSON)

	cfg, err := configFromFlags(cmd, input, estimateOnly, os.Getenv)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.Log = log
	if !estimateOnly {
		cfg.OpenRouterAPIKey = resolveAPIKey(os.Getenv, log)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	rep, err := pipeline.Run(ctx, cfg)
	if rep.ManifestPath != "" {
		printReport(cmd.OutOrStdout(), rep, estimateOnly)
	}
	return err
}

func configFromFlags(cmd *cobra.Command, input string, estimateOnly bool, getenv func(string) string) (pipeline.Config, error) {
	f := cmd.Flags()
	detailRaw, _ := f.GetString("detail")
	detail, err := types.ParseDetailLevel(detailRaw)
	if err != nil {
		return pipeline.Config{}, err
	}
	outDir, _ := f.GetString("out")
	formats, _ := f.GetStringArray("format")
	lang, _ := f.GetString("lang")

	opts := types.Options{
		DetailLevel:      detail,
		EstimateCostOnly: estimateOnly,
	}
	if !estimateOnly {
		opts.TranslateTo, _ = f.GetString("translate")
		opts.CustomPrompt, _ = f.GetString("prompt")
		opts.GenerateWordCloud, _ = f.GetBool("wordcloud")
		opts.ShowRawTranscript, _ = f.GetBool("raw")
	}

	return pipeline.Config{
		Input:   input,
		OutDir:  outDir,
		Formats: formats,
		Lang:    lang,
		Options: opts,

		OpenRouterModel:        getenvDefault(getenv, "OPENROUTER_MODEL", openrouter.DefaultModel),
		OpenRouterBaseURL:      getenvDefault(getenv, "OPENROUTER_BASE_URL", "https://openrouter.ai"),
		OpenRouterAllowedHosts: openrouter.ParseAllowedHosts(getenv("OPENROUTER_ALLOWED_HOSTS")),
		YouTubeAPIKey:          getenv("YOUTUBE_API_KEY"),
	}, nil
}

func newLogger(w io.Writer, verbose, asJSON bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if asJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func getenvDefault(getenv func(string) string, k, def string) string {
	v := getenv(k)
	if v == "" {
		return def
	}
	return v
}
