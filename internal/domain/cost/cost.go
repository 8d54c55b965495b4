package cost

import (
	"fmt"
	"math"

	"github.com/forPelevin/ytdigest/internal/types"
)

const (
	costPerSegment = 0.5
	tokenScale     = 100
	usdPerToken    = 0.00002
)

// Estimate derives a token/cost projection from segment count and detail level.
// Pure: no network, no error path; an empty transcript yields zero tokens.
func Estimate(tr []types.Segment, level types.DetailLevel) types.CostEstimate {
	base := float64(len(tr)) * costPerSegment
	tokens := int(math.Round(base * Multiplier(level) * tokenScale))
	return types.CostEstimate{
		Tokens:        tokens,
		EstimatedCost: fmt.Sprintf("$%.2f", float64(tokens)*usdPerToken),
	}
}

func Multiplier(level types.DetailLevel) float64 {
	switch level.OrDefault() {
	case types.DetailBrief:
		return 1
	case types.DetailDetailed:
		return 2.5
	default:
		return 1.5
	}
}
