package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/forPelevin/ytdigest/internal/types"
)

// Resolution is what a single strategy decided about the raw model text.
// It is one of Parsed, Retry or Fallback.
type Resolution interface {
	resolution()
}

// Parsed carries a structurally valid analysis.
type Parsed struct{ Analysis types.Analysis }

// Retry means this strategy could not parse the text; try the next one.
type Retry struct{ Err error }

// Fallback stops the chain and selects mock data.
type Fallback struct{ Reason string }

func (Parsed) resolution()   {}
func (Retry) resolution()    {}
func (Fallback) resolution() {}

// Strategy inspects raw completion text.
type Strategy func(raw string) Resolution

// DefaultStrategies are evaluated in order by Normalize.
var DefaultStrategies = []Strategy{StripFences, ExtractObject}

var errNoAnalysis = errors.New("json carries no analysis fields")

// Normalize turns raw completion text into an analysis. It never fails: when
// no strategy yields Parsed, the content-addressed mock for videoID is used.
func Normalize(raw, videoID string) (types.Analysis, types.Source) {
	return Run(DefaultStrategies, raw, videoID)
}

// Run evaluates strategies in order; see Normalize.
func Run(strategies []Strategy, raw, videoID string) (types.Analysis, types.Source) {
	if strings.TrimSpace(raw) == "" {
		return mockdata.Analysis(videoID), types.SourceMock
	}
	for _, s := range strategies {
		switch r := s(raw).(type) {
		case Parsed:
			return r.Analysis, types.SourceModel
		case Fallback:
			return mockdata.Analysis(videoID), types.SourceMock
		case Retry:
			continue
		}
	}
	return mockdata.Analysis(videoID), types.SourceMock
}

// StripFences removes markdown code fences and decodes the whole text.
func StripFences(raw string) Resolution {
	return decode(stripFences(raw))
}

// ExtractObject decodes the span between the first '{' and the last '}'.
func ExtractObject(raw string) Resolution {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Fallback{Reason: fmt.Sprintf("no json object in %q", truncate(raw, 80))}
	}
	return decode(raw[start : end+1])
}

func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	// opening fence line, with or without a language tag
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	} else {
		t = strings.TrimPrefix(strings.TrimPrefix(t, "```json"), "```")
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}

func decode(s string) Resolution {
	var a types.Analysis
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return Retry{Err: err}
	}
	if strings.TrimSpace(a.Summary) == "" && len(a.Topics) == 0 && len(a.KeyPoints) == 0 && len(a.KeyTakeaways) == 0 {
		return Retry{Err: errNoAnalysis}
	}
	if a.KeyTakeaways == nil {
		a.KeyTakeaways = []string{}
	}
	if a.Topics == nil {
		a.Topics = []types.Topic{}
	}
	if a.KeyPoints == nil {
		a.KeyPoints = []types.KeyPoint{}
	}
	return Parsed{Analysis: a}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
