package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

// ParseDetailLevel is strict; the core itself treats unknown levels as standard.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DetailBrief:
		return DetailBrief, nil
	case DetailStandard, "":
		return DetailStandard, nil
	case DetailDetailed:
		return DetailDetailed, nil
	default:
		return "", fmt.Errorf("unknown detail level %q (want brief, standard or detailed)", s)
	}
}

// OrDefault maps empty or unknown levels to standard.
func (l DetailLevel) OrDefault() DetailLevel {
	switch l {
	case DetailBrief, DetailStandard, DetailDetailed:
		return l
	default:
		return DetailStandard
	}
}

type Segment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamps  string `json:"timestamps,omitempty"`
	Coverage    *int   `json:"coverage,omitempty"`
}

// UnmarshalJSON accepts fractional coverage and rounds it to a whole percent.
func (t *Topic) UnmarshalJSON(b []byte) error {
	type plain Topic
	var raw struct {
		plain
		Coverage *float64 `json:"coverage,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Topic(raw.plain)
	if raw.Coverage != nil {
		c := int(math.Round(*raw.Coverage))
		t.Coverage = &c
	}
	return nil
}

// CoverageValue returns 0 when coverage was never set.
func (t Topic) CoverageValue() int {
	if t.Coverage == nil {
		return 0
	}
	return *t.Coverage
}

type KeyPoint struct {
	Content    string  `json:"content"`
	Timestamp  string  `json:"timestamp,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Options struct {
	DetailLevel       DetailLevel `json:"detailLevel" validate:"omitempty,oneof=brief standard detailed"`
	EstimateCostOnly  bool        `json:"estimateCostOnly"`
	TranslateTo       string      `json:"translateTo,omitempty" validate:"max=40"`
	CustomPrompt      string      `json:"customPrompt,omitempty" validate:"max=4000"`
	GenerateWordCloud bool        `json:"generateWordCloud"`
	ShowRawTranscript bool        `json:"showRawTranscript"`
}

type CostEstimate struct {
	Tokens        int    `json:"tokens"`
	EstimatedCost string `json:"estimatedCost"`
}

type WordCloudEntry struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Analysis is the structured part of a completion response.
type Analysis struct {
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	KeyTakeaways []string   `json:"keyTakeaways"`
	Topics       []Topic    `json:"topics"`
	KeyPoints    []KeyPoint `json:"keyPoints"`
}

// Source tells where a result's analysis came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceMock     Source = "mock"
	SourceEstimate Source = "estimate"
)

type Result struct {
	VideoID         string           `json:"videoId"`
	Title           string           `json:"title"`
	DetailLevel     DetailLevel      `json:"detailLevel"`
	Duration        string           `json:"duration"`
	Summary         string           `json:"summary"`
	KeyTakeaways    []string         `json:"keyTakeaways"`
	Topics          []Topic          `json:"topics"`
	KeyPoints       []KeyPoint       `json:"keyPoints"`
	Transcript      []Segment        `json:"transcript"`
	ProcessingCost  *CostEstimate    `json:"processingCost,omitempty"`
	Language        string           `json:"language,omitempty"`
	TranslatedFrom  string           `json:"translatedFrom,omitempty"`
	WordCloudData   []WordCloudEntry `json:"wordCloudData,omitempty"`
	ConfidenceScore int              `json:"confidenceScore,omitempty"`
	RawTranscript   []Segment        `json:"rawTranscript,omitempty"`

	Source   Source `json:"source"`
	Degraded bool   `json:"degraded"`
}

type Manifest struct {
	RunID  string          `json:"run_id"`
	Input  string          `json:"input"`
	Videos []ManifestVideo `json:"videos"`
}

type ManifestVideo struct {
	VideoID  string            `json:"video_id"`
	Title    string            `json:"title"`
	Source   Source            `json:"source"`
	Degraded bool              `json:"degraded"`
	Tokens   int               `json:"tokens"`
	Cost     string            `json:"cost"`
	Files    map[string]string `json:"files,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// JoinText flattens segment text in order, single-space separated.
func JoinText(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
