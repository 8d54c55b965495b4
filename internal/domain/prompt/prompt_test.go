package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/forPelevin/ytdigest/internal/types"
)

func tr(texts ...string) []types.Segment {
	out := make([]types.Segment, 0, len(texts))
	for _, t := range texts {
		out = append(out, types.Segment{Timestamp: "0:00", Text: t})
	}
	return out
}

func TestBuild_RejectsShortTranscript(t *testing.T) {
	tests := map[string][]types.Segment{
		"nil":        nil,
		"blank":      tr("   ", ""),
		"nine chars": tr("abcd", "efgh"),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Build(types.DetailStandard, in, "", "")
			if !errors.Is(err, ErrInvalidTranscript) {
				t.Fatalf("expected ErrInvalidTranscript, got %v", err)
			}
		})
	}
}

func TestBuild_DetailLevels(t *testing.T) {
	tests := []struct {
		level types.DetailLevel
		want  string
	}{
		{types.DetailBrief, "2-3 main topics"},
		{types.DetailStandard, "4-6 topics"},
		{types.DetailDetailed, "all topics"},
		{"", "4-6 topics"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			p, err := Build(tt.level, tr("hello world, this is a test"), "", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(p.System, tt.want) {
				t.Fatalf("expected system prompt to contain %q, got:\n%s", tt.want, p.System)
			}
		})
	}
}

func TestBuild_CustomPromptPrepended(t *testing.T) {
	p, err := Build(types.DetailBrief, tr("hello world again"), "  Focus on pricing.  ", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(p.System, "Focus on pricing.\n\n") {
		t.Fatalf("expected custom prompt first, got:\n%s", p.System)
	}
}

func TestBuild_Translation(t *testing.T) {
	tests := []struct {
		target   string
		wantLine bool
	}{
		{"", false},
		{"English", false},
		{"ENGLISH", false},
		{"Spanish", true},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			p, err := Build(types.DetailBrief, tr("hello world again"), "", tt.target)
			if err != nil {
				t.Fatal(err)
			}
			has := strings.Contains(p.User, "Write every text field")
			if has != tt.wantLine {
				t.Fatalf("translation line present=%v, want %v", has, tt.wantLine)
			}
			if tt.wantLine && p.TranslatedFrom != "English" {
				t.Fatalf("expected TranslatedFrom=English, got %q", p.TranslatedFrom)
			}
			if !tt.wantLine && p.TranslatedFrom != "" {
				t.Fatalf("expected empty TranslatedFrom, got %q", p.TranslatedFrom)
			}
		})
	}
}

func TestBuild_UserPromptCarriesSchemaAndText(t *testing.T) {
	p, err := Build(types.DetailStandard, tr("first line", "second line"), "", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"keyTakeaways"`, `"topics"`, `"keyPoints"`, "first line second line"} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("expected user prompt to contain %q", want)
		}
	}
}
