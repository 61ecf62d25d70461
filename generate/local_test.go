package generate

import (
	"testing"

	"github.com/sidequest-app/sidequest/server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendReturnsAtMostThree(t *testing.T) {
	e := NewEngine()
	out := e.Recommend(model.UserProfile{AvailableHoursPerWeek: 40})
	assert.Len(t, out, 3)
}

func TestRecommendFiltersByHours(t *testing.T) {
	e := NewEngine()
	out := e.Recommend(model.UserProfile{AvailableHoursPerWeek: 3})
	for _, q := range out {
		assert.NotEmpty(t, q.Title)
	}
	// Only Dog Walking fits a 3 hour budget in the built-in catalog.
	require.Len(t, out, 1)
	assert.Equal(t, "Dog Walking", out[0].Title)
}

func TestRecommendZeroHoursYieldsNothing(t *testing.T) {
	e := NewEngine()
	out := e.Recommend(model.UserProfile{AvailableHoursPerWeek: 0})
	assert.Empty(t, out)
}

func TestRecommendDeterministic(t *testing.T) {
	e := NewEngine()
	p := model.UserProfile{
		Skills:                []string{"writing", "design"},
		AvailableHoursPerWeek: 10,
	}
	first := e.Recommend(p)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Recommend(p))
	}
}

func TestRecommendPrefersSkillMatches(t *testing.T) {
	e := NewEngine()
	out := e.Recommend(model.UserProfile{
		Skills:                []string{"writing"},
		AvailableHoursPerWeek: 40,
	})
	require.NotEmpty(t, out)
	// Entries tagged with a writing skill outrank unmatched ones.
	assert.Contains(t, out[0].RequiredSkills, "writing")
}

func TestSkillScoreBidirectionalSubstring(t *testing.T) {
	assert.Equal(t, 1, skillScore([]string{"video editing"}, []string{"editing"}))
	assert.Equal(t, 1, skillScore([]string{"math"}, []string{"Mathematics"}))
	assert.Equal(t, 0, skillScore([]string{"driving"}, []string{"design"}))
	// Each entry skill counts once no matter how many user skills match it.
	assert.Equal(t, 1, skillScore([]string{"writing"}, []string{"writing", "copywriting"}))
}

func TestRecommendCustomCatalogTiesKeepOrder(t *testing.T) {
	catalog := []CatalogEntry{
		{Title: "first", MinHoursPerWeek: 1},
		{Title: "second", MinHoursPerWeek: 1},
	}
	e := NewEngineWithCatalog(catalog)
	out := e.Recommend(model.UserProfile{AvailableHoursPerWeek: 5})
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
}

func TestCatalogEntriesWellFormed(t *testing.T) {
	for _, entry := range Catalog {
		assert.NotEmpty(t, entry.Title)
		assert.NotEmpty(t, entry.ActionSteps, entry.Title)
		assert.GreaterOrEqual(t, entry.Difficulty, 1, entry.Title)
		assert.LessOrEqual(t, entry.Difficulty, 5, entry.Title)
		assert.LessOrEqual(t, entry.EarningsMin, entry.EarningsMax, entry.Title)
		assert.Greater(t, entry.MinHoursPerWeek, 0, entry.Title)
	}
}
