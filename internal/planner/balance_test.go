package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instagramTargets() []PillarTarget {
	return []PillarTarget{
		{Pillar: "product_showcase", Percentage: 40},
		{Pillar: "educational", Percentage: 20},
		{Pillar: "ugc", Percentage: 20},
		{Pillar: "promotional", Percentage: 20},
	}
}

func TestComputeBalanceWeeklyExample(t *testing.T) {
	actual := map[string]int{
		"product_showcase": 2,
		"educational":      0,
		"ugc":              1,
		"promotional":      1,
	}

	balances := ComputeBalance(instagramTargets(), actual, 10)
	require.Len(t, balances, 4)

	// product_showcase and educational tie at deficit 2; educational has
	// the lower actual count so it ranks first.
	assert.Equal(t, "educational", balances[0].Pillar)
	assert.Equal(t, 2, balances[0].Deficit)
	assert.Equal(t, "product_showcase", balances[1].Pillar)
	assert.Equal(t, 2, balances[1].Deficit)

	// ugc and promotional tie at deficit 1 and actual 1; table order wins.
	assert.Equal(t, "ugc", balances[2].Pillar)
	assert.Equal(t, 1, balances[2].Deficit)
	assert.Equal(t, "promotional", balances[3].Pillar)
	assert.Equal(t, 1, balances[3].Deficit)

	for _, b := range balances {
		assert.Equal(t, b.TargetCount-b.ActualCount, b.Deficit, b.Pillar)
	}
}

func TestComputeBalanceTargetSum(t *testing.T) {
	for _, volume := range []int{1, 7, 10, 13, 30} {
		balances := ComputeBalance(instagramTargets(), nil, volume)

		var sum int
		for _, b := range balances {
			sum += b.TargetCount
		}
		assert.InDelta(t, volume, sum, float64(len(balances)), "volume %d", volume)
	}
}

func TestComputeBalanceIdempotent(t *testing.T) {
	actual := map[string]int{"product_showcase": 3, "educational": 3, "ugc": 3, "promotional": 3}

	first := ComputeBalance(instagramTargets(), actual, 12)
	second := ComputeBalance(instagramTargets(), actual, 12)
	assert.Equal(t, first, second)
}

func TestComputeBalanceOverRepresented(t *testing.T) {
	actual := map[string]int{"promotional": 9}

	balances := ComputeBalance(instagramTargets(), actual, 10)
	last := balances[len(balances)-1]
	assert.Equal(t, "promotional", last.Pillar)
	assert.Equal(t, -7, last.Deficit)
	assert.InDelta(t, 450.0, last.PercentOfTarget, 0.01)
}

func TestComputeBalanceUnknownPillar(t *testing.T) {
	actual := map[string]int{"educational": 1, "memes": 2}

	balances := ComputeBalance(instagramTargets(), actual, 10)
	require.Len(t, balances, 5)

	var unknown *PillarBalance
	for i := range balances {
		if balances[i].Pillar == "memes" {
			unknown = &balances[i]
		}
	}
	require.NotNil(t, unknown, "unknown pillar must still appear in the ranking")
	assert.True(t, unknown.Unknown)
	assert.Equal(t, 0, unknown.TargetCount)
	assert.Equal(t, -2, unknown.Deficit)
}

func TestRecommendServingReducesRank(t *testing.T) {
	actual := map[string]int{"product_showcase": 2, "educational": 0, "ugc": 1, "promotional": 1}

	before := ComputeBalance(instagramTargets(), actual, 10)
	recs := Recommend(before, 1)
	require.Len(t, recs, 1)
	assert.Equal(t, "educational", recs[0].Pillar)

	// Producing the suggested pillar must drop it down the ranking.
	actual[recs[0].Pillar] += 2
	after := ComputeBalance(instagramTargets(), actual, 10)
	assert.Equal(t, "product_showcase", after[0].Pillar)

	rankOf := func(balances []PillarBalance, pillar string) int {
		for i, b := range balances {
			if b.Pillar == pillar {
				return i
			}
		}
		return -1
	}
	assert.Greater(t, rankOf(after, "educational"), rankOf(before, "educational"))
}

func TestRecommendFiltersAndLimits(t *testing.T) {
	actual := map[string]int{"product_showcase": 1, "educational": 2, "ugc": 2, "promotional": 5}

	balances := ComputeBalance(instagramTargets(), actual, 10)

	needs := NeedsContent(balances)
	require.Len(t, needs, 1)
	assert.Equal(t, "product_showcase", needs[0].Pillar)

	recs := Recommend(balances, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].SuggestedCount)
	assert.Contains(t, recs[0].Rationale, "product_showcase")
	assert.Contains(t, recs[0].Rationale, "3")
}

func TestRecommendBalancedIsEmptyNotNilRanking(t *testing.T) {
	actual := map[string]int{"product_showcase": 4, "educational": 2, "ugc": 2, "promotional": 2}

	balances := ComputeBalance(instagramTargets(), actual, 10)
	require.Len(t, balances, 4, "full ranking survives a balanced week")
	assert.Empty(t, Recommend(balances, 3))
}
