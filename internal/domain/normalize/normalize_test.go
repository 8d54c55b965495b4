package normalize

import (
	"encoding/json"
	"testing"

	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/forPelevin/ytdigest/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleAnalysis() types.Analysis {
	c1, c2 := 60, 40
	return types.Analysis{
		Title:        "Go Concurrency",
		Summary:      "Goroutines and channels explained.",
		KeyTakeaways: []string{"Share memory by communicating."},
		Topics: []types.Topic{
			{Title: "Goroutines", Description: "Lightweight threads.", Timestamps: "0:00 - 2:00", Coverage: &c1},
			{Title: "Channels", Description: "Typed pipes.", Coverage: &c2},
		},
		KeyPoints: []types.KeyPoint{
			{Content: "Use select for multiplexing.", Timestamp: "1:10", Confidence: 90},
		},
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	want := sampleAnalysis()
	b, err := json.Marshal(want)
	require.NoError(t, err)

	tests := map[string]string{
		"raw":           string(b),
		"json fence":    "```json\n" + string(b) + "\n```",
		"bare fence":    "```\n" + string(b) + "\n```",
		"padded":        "\n\n  " + string(b) + "  \n",
		"chatty prefix": "Here is your analysis:\n" + string(b) + "\nLet me know!",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			got, src := Normalize(raw, "vid")
			require.Equal(t, types.SourceModel, src)
			require.Equal(t, want, got)
		})
	}

	fractional := map[string]struct {
		raw      string
		coverage int
		conf     float64
	}{
		"fractional coverage": {
			raw:      `{"summary":"real","topics":[{"title":"A","description":"d","coverage":33.3}],"keyPoints":[{"content":"c","confidence":90}]}`,
			coverage: 33, conf: 90,
		},
		"unit confidence": {
			raw:      `{"summary":"real","topics":[{"title":"A","description":"d","coverage":66.7}],"keyPoints":[{"content":"c","confidence":0.92}]}`,
			coverage: 67, conf: 0.92,
		},
		"fenced fractional": {
			raw:      "```json\n" + `{"summary":"real","topics":[{"title":"A","description":"d","coverage":12.5}],"keyPoints":[{"content":"c","confidence":87.5}]}` + "\n```",
			coverage: 13, conf: 87.5,
		},
	}
	for name, tc := range fractional {
		t.Run(name, func(t *testing.T) {
			got, src := Normalize(tc.raw, "vid")
			require.Equal(t, types.SourceModel, src)
			require.Equal(t, "real", got.Summary)
			require.Len(t, got.Topics, 1)
			require.NotNil(t, got.Topics[0].Coverage)
			require.Equal(t, tc.coverage, *got.Topics[0].Coverage)
			require.Len(t, got.KeyPoints, 1)
			require.InDelta(t, tc.conf, got.KeyPoints[0].Confidence, 1e-9)
		})
	}
}

func TestNormalize_MissingCoverageStaysNil(t *testing.T) {
	got, src := Normalize(`{"summary":"s","topics":[{"title":"A","description":"d"}]}`, "vid")
	require.Equal(t, types.SourceModel, src)
	require.Nil(t, got.Topics[0].Coverage)
}

func TestNormalize_FallsBackToMock(t *testing.T) {
	tests := map[string]string{
		"empty":         "   ",
		"prose":         "I could not analyze this transcript.",
		"broken json":   `{"title": "x", "summary": `,
		"empty object":  `{}`,
		"wrong shape":   `{"foo": "bar"}`,
		"array instead": `[1, 2, 3]`,
	}
	want := mockdata.Analysis("vid-42")
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			got, src := Normalize(raw, "vid-42")
			require.Equal(t, types.SourceMock, src)
			require.Equal(t, want, got)
		})
	}
}

func TestNormalize_FillsMissingSlices(t *testing.T) {
	got, src := Normalize(`{"summary": "only a summary"}`, "vid")
	require.Equal(t, types.SourceModel, src)
	require.NotNil(t, got.KeyTakeaways)
	require.NotNil(t, got.Topics)
	require.NotNil(t, got.KeyPoints)
}

func TestStrategies_Individually(t *testing.T) {
	fenced := "```json\n{\"summary\":\"s\"}\n```"
	require.IsType(t, Parsed{}, StripFences(fenced))
	require.IsType(t, Retry{}, StripFences("note: {\"summary\":\"s\"}"))
	require.IsType(t, Parsed{}, ExtractObject("note: {\"summary\":\"s\"} end"))
	require.IsType(t, Fallback{}, ExtractObject("no braces here"))
	require.IsType(t, Retry{}, ExtractObject("{not json}"))
}

func TestRun_CustomOrder(t *testing.T) {
	calls := 0
	retry := func(string) Resolution { calls++; return Retry{} }
	stop := func(string) Resolution { calls++; return Fallback{Reason: "stop"} }
	never := func(string) Resolution { t.Fatal("strategy after Fallback must not run"); return nil }

	_, src := Run([]Strategy{retry, stop, never}, "text", "vid")
	require.Equal(t, types.SourceMock, src)
	require.Equal(t, 2, calls)
}
