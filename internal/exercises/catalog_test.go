package exercises

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("testdata/exercises.json")
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())
	return c
}

func names(list []Exercise) []string {
	out := make([]string, len(list))
	for i, ex := range list {
		out[i] = ex.Name
	}
	return out
}

func TestReadRejectsBadRows(t *testing.T) {
	_, err := Read(strings.NewReader(`[{"id": "x", "name": ""}]`))
	assert.ErrorIs(t, err, ErrBadExercise)

	_, err = Read(strings.NewReader(`{"id": "x"}`))
	assert.Error(t, err)
}

func TestMuscleGroupsSortedUnion(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, []string{
		"biceps", "chest", "glutes", "hamstrings", "lats", "middle back", "quadriceps", "shoulders", "triceps",
	}, c.MuscleGroups())
}

func TestPage(t *testing.T) {
	c := loadTestCatalog(t)

	p, err := c.Page(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barbell Bench Press", "Pullups"}, names(p.Exercises))
	assert.True(t, p.HasMore)
	assert.Equal(t, 5, p.Total)

	p, err = c.Page(3, 2)
	require.NoError(t, err)
	assert.Len(t, p.Exercises, 1)
	assert.False(t, p.HasMore)

	p, err = c.Page(10, 2)
	require.NoError(t, err)
	assert.Empty(t, p.Exercises)
	assert.False(t, p.HasMore)
}

func TestSearch(t *testing.T) {
	c := loadTestCatalog(t)

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"text in name", Filter{Q: "barbell"}, []string{"Barbell Bench Press", "Barbell Squat"}},
		{"text in instructions", Filter{Q: "CHIN"}, []string{"Pullups"}},
		{"secondary muscle", Filter{Muscle: "Hamstrings"}, []string{"Barbell Squat", "Hamstring Stretch"}},
		{"muscle is exact", Filter{Muscle: "ham"}, []string{}},
		{"equipment substring", Filter{Equipment: "bell"}, []string{"Barbell Bench Press", "Barbell Squat", "Dumbbell Flyes"}},
		{"category", Filter{Category: "stretch"}, []string{"Hamstring Stretch"}},
		{"combined", Filter{Muscle: "chest", Equipment: "dumbbell"}, []string{"Dumbbell Flyes"}},
		{"limit", Filter{Q: "a", Limit: 2}, []string{"Barbell Bench Press", "Pullups"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.Search(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res.Exercises))
			assert.Equal(t, len(tc.want), res.TotalFound)
		})
	}
}

func TestSearchLimitBounds(t *testing.T) {
	c := loadTestCatalog(t)

	res, err := c.Search(Filter{Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchLimit, res.Filters.Limit)

	res, err = c.Search(Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxSearchLimit, res.Filters.Limit)
}

func TestByMuscle(t *testing.T) {
	c := loadTestCatalog(t)

	got, err := c.ByMuscle("CHEST")
	require.NoError(t, err)
	assert.Equal(t, []string{"Barbell Bench Press", "Dumbbell Flyes"}, names(got))
}

func TestRandomDistinct(t *testing.T) {
	c := loadTestCatalog(t)

	got, err := c.Random(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, ex := range got {
		assert.False(t, seen[ex.ID])
		seen[ex.ID] = true
	}

	got, err = c.Random(MaxRandomCount)
	require.NoError(t, err)
	assert.Len(t, got, c.Len())
}

func TestStats(t *testing.T) {
	c := loadTestCatalog(t)

	s, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, s.TotalExercises)
	assert.Equal(t, map[string]int{"strength": 4, "stretching": 1}, s.Categories)
	assert.Equal(t, 2, s.EquipmentTypes["barbell"])
	assert.Equal(t, 1, s.EquipmentTypes["Unknown"])
	assert.Equal(t, 2, s.PrimaryMuscleDistribution["chest"])
}

func TestEmptyCatalog(t *testing.T) {
	c := New(nil)

	_, err := c.Search(Filter{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	_, err = c.Random(1)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	_, err = c.Stats()
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	assert.Empty(t, c.MuscleGroups())
}
