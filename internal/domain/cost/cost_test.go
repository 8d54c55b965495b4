package cost

import (
	"fmt"
	"testing"

	"github.com/forPelevin/ytdigest/internal/types"
	"github.com/stretchr/testify/require"
)

func segments(n int) []types.Segment {
	out := make([]types.Segment, n)
	for i := range out {
		out[i] = types.Segment{Timestamp: fmt.Sprintf("0:%02d", i), Text: "line"}
	}
	return out
}

func TestEstimate_Table(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		level      types.DetailLevel
		wantTokens int
		wantCost   string
	}{
		{"empty", 0, types.DetailBrief, 0, "$0.00"},
		{"one brief", 1, types.DetailBrief, 50, "$0.00"},
		{"twenty detailed", 20, types.DetailDetailed, 2500, "$0.05"},
		{"ten brief", 10, types.DetailBrief, 500, "$0.01"},
		{"three standard", 3, types.DetailStandard, 225, "$0.00"},
		{"unknown level acts as standard", 4, "verbose", 300, "$0.01"},
		{"large brief", 2000, types.DetailBrief, 100000, "$2.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(segments(tt.n), tt.level)
			require.Equal(t, tt.wantTokens, got.Tokens)
			require.Equal(t, tt.wantCost, got.EstimatedCost)
		})
	}
}

func TestEstimate_MonotonicInSegmentCount(t *testing.T) {
	for _, level := range []types.DetailLevel{types.DetailBrief, types.DetailStandard, types.DetailDetailed} {
		prev := -1
		for n := 0; n <= 200; n++ {
			got := Estimate(segments(n), level)
			require.GreaterOrEqual(t, got.Tokens, prev, "level=%s n=%d", level, n)
			require.Equal(t, got, Estimate(segments(n), level))
			prev = got.Tokens
		}
	}
}
