package wordcloud

import (
	"sort"
	"strings"
	"unicode"

	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/forPelevin/ytdigest/internal/types"
)

const (
	maxWords = 20
	minWords = 8
)

var stopWords = map[string]struct{}{
	"and":  {},
	"the":  {},
	"this": {},
	"that": {},
	"with": {},
	"from": {},
}

// Summarize returns the most frequent repeated words in text, or nil when
// disabled. Fewer than minWords qualifying words yield the fixed mock set.
func Summarize(text string, enabled bool) []types.WordCloudEntry {
	if !enabled {
		return nil
	}
	out := Frequencies(text)
	if len(out) < minWords {
		return mockdata.WordCloud()
	}
	return out
}

// Frequencies is Summarize without the mock fallback.
func Frequencies(text string) []types.WordCloudEntry {
	counts := map[string]int{}
	for _, tok := range strings.Fields(text) {
		w := normalizeToken(tok)
		if len([]rune(w)) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		counts[w]++
	}

	out := make([]types.WordCloudEntry, 0, len(counts))
	for w, n := range counts {
		if n > 1 {
			out = append(out, types.WordCloudEntry{Text: w, Value: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == out[j].Value {
			return out[i].Text < out[j].Text
		}
		return out[i].Value > out[j].Value
	})
	if len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

func normalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
