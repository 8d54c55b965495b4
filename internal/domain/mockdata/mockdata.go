// Package mockdata holds the fixed demonstration records used whenever a
// real analysis or transcript is unavailable. Selection is keyed by a hash of
// the video ID so the same video always maps to the same record.
package mockdata

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/forPelevin/ytdigest/internal/types"
)

func cov(v int) *int { return &v }

var analyses = []types.Analysis{
	{
		Title:   "The Future of Artificial Intelligence",
		Summary: "This video explores how artificial intelligence is reshaping industries, from healthcare to finance, and discusses the ethical questions raised by increasingly capable systems.",
		KeyTakeaways: []string{
			"AI adoption is accelerating across most industries.",
			"Responsible deployment requires transparency and oversight.",
			"Human expertise remains essential alongside automation.",
		},
		Topics: []types.Topic{
			{Title: "AI in Industry", Description: "Real-world applications in healthcare, finance and logistics.", Timestamps: "0:00 - 4:30", Coverage: cov(40)},
			{Title: "Ethics and Regulation", Description: "Bias, accountability and emerging regulatory frameworks.", Timestamps: "4:30 - 8:15", Coverage: cov(35)},
			{Title: "The Road Ahead", Description: "Predictions for the next decade of AI research.", Timestamps: "8:15 - 11:00", Coverage: cov(25)},
		},
		KeyPoints: []types.KeyPoint{
			{Content: "Diagnostic models now match specialists on several imaging tasks.", Timestamp: "1:45", Confidence: 92},
			{Content: "Explainability is the main barrier to adoption in regulated sectors.", Timestamp: "5:10", Confidence: 88},
			{Content: "Hybrid human-AI workflows outperform either alone.", Timestamp: "9:02", Confidence: 85},
		},
	},
	{
		Title:   "Building Productive Habits",
		Summary: "A practical guide to forming habits that stick, covering the habit loop, environment design and how to recover after missing a day.",
		KeyTakeaways: []string{
			"Small, consistent actions compound over time.",
			"Environment shapes behaviour more than motivation does.",
			"Missing once is an accident; missing twice starts a new habit.",
		},
		Topics: []types.Topic{
			{Title: "The Habit Loop", Description: "Cue, routine and reward explained with examples.", Timestamps: "0:00 - 3:20", Coverage: cov(30)},
			{Title: "Designing Your Environment", Description: "Reducing friction for good habits and adding it for bad ones.", Timestamps: "3:20 - 7:40", Coverage: cov(45)},
			{Title: "Recovering From Setbacks", Description: "Strategies for getting back on track quickly.", Timestamps: "7:40 - 10:05", Coverage: cov(25)},
		},
		KeyPoints: []types.KeyPoint{
			{Content: "Attach a new habit to an existing daily routine.", Timestamp: "2:05", Confidence: 90},
			{Content: "Make the first step take less than two minutes.", Timestamp: "4:48", Confidence: 87},
			{Content: "Track streaks visibly to reinforce the reward.", Timestamp: "8:30", Confidence: 86},
		},
	},
	{
		Title:   "Introduction to Climate Science",
		Summary: "An overview of the greenhouse effect, the evidence for recent warming and the main mitigation strategies being pursued worldwide.",
		KeyTakeaways: []string{
			"Greenhouse gases trap heat that would otherwise escape to space.",
			"Multiple independent datasets confirm recent warming.",
			"Mitigation combines clean energy, efficiency and adaptation.",
		},
		Topics: []types.Topic{
			{Title: "The Greenhouse Effect", Description: "How carbon dioxide and methane affect the energy balance.", Timestamps: "0:00 - 3:50", Coverage: cov(35)},
			{Title: "Measuring Change", Description: "Temperature records, ice cores and satellite data.", Timestamps: "3:50 - 7:30", Coverage: cov(30)},
			{Title: "Mitigation Strategies", Description: "Renewables, efficiency and carbon removal.", Timestamps: "7:30 - 12:00", Coverage: cov(35)},
		},
		KeyPoints: []types.KeyPoint{
			{Content: "Atmospheric CO2 has risen by roughly half since pre-industrial times.", Timestamp: "2:40", Confidence: 94},
			{Content: "The last decade was the warmest on record.", Timestamp: "5:15", Confidence: 91},
			{Content: "Solar and wind are now the cheapest new electricity in most regions.", Timestamp: "9:20", Confidence: 89},
		},
	},
}

var wordCloud = []types.WordCloudEntry{
	{Text: "AI", Value: 100},
	{Text: "Technology", Value: 85},
	{Text: "Innovation", Value: 72},
	{Text: "Data", Value: 65},
	{Text: "Future", Value: 58},
	{Text: "Learning", Value: 50},
	{Text: "Digital", Value: 44},
	{Text: "Research", Value: 38},
}

var transcriptLines = []string{
	"Welcome back to the channel, today we are looking at something a little different.",
	"Before we dive in, let me give you some background on why this topic matters.",
	"The first thing to understand is how the basic idea actually works in practice.",
	"Here is an example that shows the concept much more clearly than any definition.",
	"Now let's look at the most common mistakes people make when getting started.",
	"The second big idea builds directly on what we just covered.",
	"If you remember one thing from this video, remember this next point.",
	"Let's wrap up with a quick summary and a few resources for further learning.",
}

// index maps a video ID onto n slots; identical IDs always pick the same slot.
func index(videoID string, n int) int {
	sum := sha256.Sum256([]byte(videoID))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Analysis returns the mock analysis for videoID. The returned value is a
// deep copy, so callers may modify it freely.
func Analysis(videoID string) types.Analysis {
	return cloneAnalysis(analyses[index(videoID, len(analyses))])
}

// WordCloud returns the fixed illustrative word set.
func WordCloud() []types.WordCloudEntry {
	return append([]types.WordCloudEntry(nil), wordCloud...)
}

// Transcript returns a stand-in transcript for videos without captions. The
// starting line rotates with the video ID.
func Transcript(videoID string) []types.Segment {
	start := index(videoID, len(transcriptLines))
	out := make([]types.Segment, 0, len(transcriptLines))
	for i := range transcriptLines {
		sec := i * 45
		out = append(out, types.Segment{
			Timestamp: fmt.Sprintf("%d:%02d", sec/60, sec%60),
			Text:      transcriptLines[(start+i)%len(transcriptLines)],
		})
	}
	return out
}

func cloneAnalysis(a types.Analysis) types.Analysis {
	out := a
	out.KeyTakeaways = append([]string(nil), a.KeyTakeaways...)
	out.KeyPoints = append([]types.KeyPoint(nil), a.KeyPoints...)
	out.Topics = make([]types.Topic, len(a.Topics))
	for i, t := range a.Topics {
		if t.Coverage != nil {
			t.Coverage = cov(*t.Coverage)
		}
		out.Topics[i] = t
	}
	return out
}
