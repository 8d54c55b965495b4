package prompt

import (
	"errors"
	"strings"

	"github.com/forPelevin/ytdigest/internal/types"
)

// MinTranscriptChars is the shortest flattened transcript worth sending.
const MinTranscriptChars = 10

var ErrInvalidTranscript = errors.New("transcript text is empty or too short")

type Prompt struct {
	System string
	User   string

	// TranslatedFrom is set when a translation was requested. No detection
	// happens; the source language is assumed to be English.
	TranslatedFrom string
}

type levelSpec struct {
	topics    string
	keyPoints string
	summary   string
}

var levels = map[types.DetailLevel]levelSpec{
	types.DetailBrief: {
		topics:    "Identify the 2-3 main topics only.",
		keyPoints: "Extract 3-4 key points.",
		summary:   "Write a summary of at most 2 sentences.",
	},
	types.DetailStandard: {
		topics:    "Identify 4-6 topics covering the main themes.",
		keyPoints: "Extract 5-7 key points.",
		summary:   "Write a one-paragraph summary.",
	},
	types.DetailDetailed: {
		topics:    "Identify all topics discussed, including minor ones.",
		keyPoints: "Extract 10-12 or more key points with timestamps where possible.",
		summary:   "Write a detailed multi-paragraph summary.",
	},
}

const baseSystem = "You are an expert content analyst. You read video transcripts and produce " +
	"accurate, well-structured analyses. Always answer with a single JSON object and nothing else."

const schema = `{
  "title": "string",
  "summary": "string",
  "keyTakeaways": ["string"],
  "topics": [{"title": "string", "description": "string", "timestamps": "string", "coverage": 0}],
  "keyPoints": [{"content": "string", "timestamp": "string", "confidence": 0}]
}`

// Build turns the transcript and options into a system/user prompt pair.
// The custom prompt is prepended as-is; it is not sanitized.
func Build(level types.DetailLevel, tr []types.Segment, customPrompt, translateTo string) (Prompt, error) {
	text := types.JoinText(tr)
	if len(strings.TrimSpace(text)) < MinTranscriptChars {
		return Prompt{}, ErrInvalidTranscript
	}
	spec := levels[level.OrDefault()]

	var sys strings.Builder
	if cp := strings.TrimSpace(customPrompt); cp != "" {
		sys.WriteString(cp)
		sys.WriteString("\n\n")
	}
	sys.WriteString(baseSystem)
	sys.WriteString("\n")
	sys.WriteString(spec.topics)
	sys.WriteString(" ")
	sys.WriteString(spec.keyPoints)
	sys.WriteString(" ")
	sys.WriteString(spec.summary)

	var user strings.Builder
	user.WriteString("Analyze the following video transcript. ")
	user.WriteString("Return strictly valid JSON with exactly this shape:\n")
	user.WriteString(schema)
	user.WriteString("\nCoverage is the percentage (0-100) of the video spent on the topic; ")
	user.WriteString("confidence is how certain you are (0-100) about the key point.")

	p := Prompt{}
	if wantsTranslation(translateTo) {
		user.WriteString("\nWrite every text field of the JSON in ")
		user.WriteString(strings.TrimSpace(translateTo))
		user.WriteString(".")
		p.TranslatedFrom = "English"
	}

	user.WriteString("\n\nTranscript:\n")
	user.WriteString(text)

	p.System = sys.String()
	p.User = user.String()
	return p, nil
}

func wantsTranslation(target string) bool {
	t := strings.TrimSpace(target)
	return t != "" && !strings.EqualFold(t, "english")
}
