package usecase

import (
	"strings"

	"github.com/forPelevin/ytdigest/internal/domain/prompt"
	"github.com/forPelevin/ytdigest/internal/types"
)

const (
	defaultLanguage = "English"
	emptyDuration   = "0:00"
)

type assembly struct {
	in        Input
	level     types.DetailLevel
	analysis  types.Analysis
	source    types.Source
	cost      types.CostEstimate
	prompt    prompt.Prompt
	wordCloud []types.WordCloudEntry
}

func assemble(a assembly, rnd Rand) types.Result {
	est := a.cost
	res := types.Result{
		VideoID:         a.in.VideoID,
		Title:           pickTitle(a.in.Title, a.analysis.Title, a.in.VideoID),
		DetailLevel:     a.level,
		Duration:        duration(a.in.Transcript),
		Summary:         a.analysis.Summary,
		KeyTakeaways:    append([]string{}, a.analysis.KeyTakeaways...),
		Topics:          backfillCoverage(a.analysis.Topics, rnd),
		KeyPoints:       append([]types.KeyPoint{}, a.analysis.KeyPoints...),
		Transcript:      append([]types.Segment{}, a.in.Transcript...),
		ProcessingCost:  &est,
		Language:        defaultLanguage,
		WordCloudData:   a.wordCloud,
		ConfidenceScore: 85 + rnd.IntN(11),
		Source:          a.source,
		Degraded:        a.source != types.SourceModel,
	}
	if a.prompt.TranslatedFrom != "" {
		res.Language = strings.TrimSpace(a.in.Options.TranslateTo)
		res.TranslatedFrom = a.prompt.TranslatedFrom
	}
	if a.in.Options.ShowRawTranscript {
		res.RawTranscript = append([]types.Segment{}, a.in.Transcript...)
	}
	return res
}

func estimateOnly(in Input, level types.DetailLevel, est types.CostEstimate) types.Result {
	return types.Result{
		VideoID:        in.VideoID,
		Title:          pickTitle(in.Title, "", in.VideoID),
		DetailLevel:    level,
		Duration:       duration(in.Transcript),
		KeyTakeaways:   []string{},
		Topics:         []types.Topic{},
		KeyPoints:      []types.KeyPoint{},
		Transcript:     []types.Segment{},
		ProcessingCost: &est,
		Source:         types.SourceEstimate,
	}
}

func pickTitle(meta, model, videoID string) string {
	if t := strings.TrimSpace(meta); t != "" {
		return t
	}
	if t := strings.TrimSpace(model); t != "" {
		return t
	}
	return "Video " + videoID
}

func duration(tr []types.Segment) string {
	if len(tr) == 0 {
		return emptyDuration
	}
	if ts := strings.TrimSpace(tr[len(tr)-1].Timestamp); ts != "" {
		return ts
	}
	return emptyDuration
}

// backfillCoverage copies topics and fills missing coverage with [10,40).
// Present values are kept as-is, so totals need not add up to 100.
func backfillCoverage(topics []types.Topic, rnd Rand) []types.Topic {
	out := make([]types.Topic, len(topics))
	for i, t := range topics {
		var c int
		if t.Coverage != nil {
			c = *t.Coverage
		} else {
			c = 10 + rnd.IntN(30)
		}
		t.Coverage = &c
		out[i] = t
	}
	return out
}
