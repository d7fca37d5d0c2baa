package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysForVolume(t *testing.T) {
	cases := map[string]int{
		"1-2":   2,
		"3-4":   4,
		"5-6":   6,
		"7":     7,
		"":      DefaultDaysPerWeek,
		"daily": DefaultDaysPerWeek,
	}
	for volume, want := range cases {
		assert.Equal(t, want, DaysForVolume(volume), "volume %q", volume)
	}
}

func TestPickSplitForDays(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, SplitFullBody},
		{1, SplitFullBody},
		{2, SplitFullBody},
		{3, SplitFullBodyEOD},
		{4, SplitUpperLower},
		{5, SplitPPL},
		{6, SplitPPL},
		{7, SplitPPL},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PickSplitForDays(tc.days), "days=%d", tc.days)
	}
}

func TestPickSplitIgnoresProfileExtras(t *testing.T) {
	base := PickSplit("beginner", "3-4", []string{"strength"}, "dumbbells")
	assert.Equal(t, base, PickSplit("advanced", "3-4", []string{"hypertrophy", "fat_loss"}, "full_gym"))
}

func TestGeneratePlan(t *testing.T) {
	plan := GeneratePlan("intermediate", "5-6", []string{"strength"}, "full_gym")

	assert.Equal(t, 6, plan.DaysPerWeek)
	assert.Equal(t, SplitPPL, plan.Split)
	assert.Equal(t, AsNeeded, plan.RestRule)
	assert.Equal(t, "full_gym", plan.Equipment)
	assert.Equal(t, []string{"strength"}, plan.Goals)
	require.Len(t, plan.Week, DaysInWeek)
	assert.Equal(t, []string{"push", "pull", "legs", "push", "pull", "legs", ""}, focuses(plan.Week))
}

func TestGeneratePlanDefaultVolume(t *testing.T) {
	plan := GeneratePlan("", "unknown", nil, "")

	assert.Equal(t, DefaultDaysPerWeek, plan.DaysPerWeek)
	assert.Equal(t, SplitUpperLower, plan.Split)
	assert.NotNil(t, plan.Goals)
	assert.Equal(t, 4, TrainingDays(plan.Week))
}

func TestSplitCatalogIsReadOnly(t *testing.T) {
	split, ok := LookupSplit("upper_lower")
	require.True(t, ok)
	split.Sessions[0] = "mutated"

	again, _ := LookupSplit("upper_lower")
	assert.Equal(t, []string{"upper", "lower"}, again.Sessions)

	_, ok = LookupSplit("nope")
	assert.False(t, ok)
}

func TestRestRules(t *testing.T) {
	assert.Equal(t, EveryOtherDay, RestRuleFor(SplitFullBodyEOD))
	assert.Equal(t, AsNeeded, RestRuleFor(SplitPPL))
	assert.Equal(t, AsNeeded, RestRuleFor("unknown"))
	assert.Len(t, SplitNames(), 11)
}
