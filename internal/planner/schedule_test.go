package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(week []Day) []DayType {
	out := make([]DayType, len(week))
	for i, d := range week {
		out[i] = d.Type
	}
	return out
}

func focuses(week []Day) []string {
	out := make([]string, len(week))
	for i, d := range week {
		out[i] = d.Focus
	}
	return out
}

func TestBuildWeekUpperLowerAsNeeded(t *testing.T) {
	week := BuildWeek([]string{"upper", "lower"}, 4, AsNeeded)

	require.Len(t, week, DaysInWeek)
	assert.Equal(t, []DayType{DayTrain, DayTrain, DayTrain, DayTrain, DayRest, DayRest, DayRest}, types(week))
	assert.Equal(t, []string{"upper", "lower", "upper", "lower", "", "", ""}, focuses(week))
	for i, d := range week {
		assert.Equal(t, i+1, d.Day)
	}
}

func TestBuildWeekEveryOtherDay(t *testing.T) {
	week := BuildWeek([]string{"push", "pull", "legs"}, 3, EveryOtherDay)

	assert.Equal(t, []DayType{DayTrain, DayRest, DayTrain, DayRest, DayTrain, DayRest, DayRest}, types(week))
	assert.Equal(t, []string{"push", "", "pull", "", "legs", "", ""}, focuses(week))
}

func TestBuildWeekFallsShortSilently(t *testing.T) {
	week := BuildWeek([]string{"full"}, 5, EveryOtherDay)
	assert.Len(t, week, DaysInWeek)
	assert.Equal(t, 4, TrainingDays(week))

	week = BuildWeek([]string{"push", "pull", "legs"}, 10, AsNeeded)
	assert.Len(t, week, DaysInWeek)
	assert.Equal(t, 7, TrainingDays(week))
	assert.Equal(t, "push", week[6].Focus)
}

func TestBuildWeekDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0, TrainingDays(BuildWeek(nil, 4, AsNeeded)))
	assert.Equal(t, 0, TrainingDays(BuildWeek([]string{"full"}, 0, AsNeeded)))
	assert.Equal(t, 0, TrainingDays(BuildWeek([]string{"full"}, -2, AsNeeded)))
}

func TestBuildWeekAlwaysSevenDaysAndNeverExceedsTarget(t *testing.T) {
	for _, name := range SplitNames() {
		split, ok := LookupSplit(name)
		require.True(t, ok)
		for days := 0; days <= 9; days++ {
			for _, rule := range []RestRule{AsNeeded, EveryOtherDay} {
				week := BuildWeek(split.Sessions, days, rule)
				require.Len(t, week, DaysInWeek)
				assert.LessOrEqual(t, TrainingDays(week), days)
				if rule == EveryOtherDay {
					for i := 1; i < len(week); i++ {
						assert.False(t, week[i].Type == DayTrain && week[i-1].Type == DayTrain,
							"%s days=%d back-to-back training on day %d", name, days, week[i].Day)
					}
				}
			}
		}
	}
}
