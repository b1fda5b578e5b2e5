package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTargetsSumTo100(t *testing.T) {
	provider, err := NewStaticTargets(DefaultTargets())
	require.NoError(t, err)

	for _, platform := range []string{"instagram", "tiktok", "pinterest"} {
		targets := provider.GetTargets(platform)
		require.NotEmpty(t, targets, platform)

		var sum float64
		for _, target := range targets {
			sum += target.Percentage
		}
		assert.InDelta(t, 100.0, sum, 0.5, platform)
	}
}

func TestNewStaticTargetsRejectsBadSum(t *testing.T) {
	_, err := NewStaticTargets(map[string][]PillarTarget{
		"instagram": {
			{Pillar: "product_showcase", Percentage: 40},
			{Pillar: "educational", Percentage: 40},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instagram")
}

func TestGetTargetsUnknownPlatform(t *testing.T) {
	provider, err := NewStaticTargets(DefaultTargets())
	require.NoError(t, err)
	assert.Nil(t, provider.GetTargets("myspace"))
}
