package wordcloud

import (
	"fmt"
	"strings"
	"testing"

	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/stretchr/testify/require"
)

// repeated builds text where each of n distinct words occurs twice.
func repeated(n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		w := fmt.Sprintf("word%c%c", 'a'+i/26, 'a'+i%26)
		parts = append(parts, w, w)
	}
	return strings.Join(parts, " ")
}

func TestSummarize_Disabled(t *testing.T) {
	require.Nil(t, Summarize(repeated(10), false))
}

func TestSummarize_Boundary(t *testing.T) {
	seven := Summarize(repeated(7), true)
	require.Equal(t, mockdata.WordCloud(), seven)

	eight := Summarize(repeated(8), true)
	require.Len(t, eight, 8)
	require.Equal(t, "wordaa", eight[0].Text)
	require.Equal(t, 2, eight[0].Value)
}

func TestSummarize_TechnologyFiveTimes(t *testing.T) {
	text := "Technology technology, TECHNOLOGY! technology. technology is great"
	got := Summarize(text, true)
	require.Equal(t, mockdata.WordCloud(), got)
	require.Equal(t, "AI", got[0].Text)
	require.Equal(t, 100, got[0].Value)
}

func TestFrequencies_Filters(t *testing.T) {
	text := "the the this this that that with with from from and and " +
		"cat cat dog dog " + // too short
		"gopher gopher gopher " +
		"single " +
		"Channel channel! (channel)"
	got := Frequencies(text)
	require.Len(t, got, 2)
	require.Equal(t, "channel", got[0].Text)
	require.Equal(t, 3, got[0].Value)
	require.Equal(t, "gopher", got[1].Text)
	require.Equal(t, 3, got[1].Value)
}

func TestFrequencies_CapsAtTwenty(t *testing.T) {
	got := Frequencies(repeated(30))
	require.Len(t, got, 20)
}

func TestFrequencies_OrderedByCount(t *testing.T) {
	got := Frequencies("alpha alpha beta beta beta gamma gamma gamma gamma")
	require.Equal(t, []string{"gamma", "beta", "alpha"}, []string{got[0].Text, got[1].Text, got[2].Text})
}
