package generate

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/sidequest-app/sidequest/server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIncludesProfileFields(t *testing.T) {
	e := NewEncoder(rand.New(rand.NewSource(1)))
	prompt, niches := e.Encode(model.UserProfile{
		Skills:                []string{"writing", "design"},
		AvailableHoursPerWeek: 10,
		Resources:             []string{"laptop"},
		Goals:                 []string{"extra-income"},
		Interests:             []string{"photography"},
		LocationType:          model.LocationHybrid,
	})

	assert.Contains(t, prompt, "writing, design")
	assert.Contains(t, prompt, "Available hours per week: 10")
	assert.Contains(t, prompt, "laptop")
	assert.Contains(t, prompt, "hybrid")
	require.Len(t, niches, 3)
	for _, n := range niches {
		assert.Contains(t, prompt, n)
	}
}

func TestEncodeDefaultsForEmptyProfile(t *testing.T) {
	e := NewEncoder(rand.New(rand.NewSource(1)))
	prompt, _ := e.Encode(model.UserProfile{})

	assert.Contains(t, prompt, strings.Join(defaultSkills, ", "))
	assert.Contains(t, prompt, "Available hours per week: 5")
	assert.Contains(t, prompt, string(model.LocationRemote))
	assert.NotContains(t, prompt, "Resources on hand")
}

func TestEncodeDeterministicWithSeed(t *testing.T) {
	p := model.UserProfile{Skills: []string{"writing"}}
	p1, n1 := NewEncoder(rand.New(rand.NewSource(42))).Encode(p)
	p2, n2 := NewEncoder(rand.New(rand.NewSource(42))).Encode(p)
	assert.Equal(t, p1, p2)
	assert.Equal(t, n1, n2)
}

func TestPickNichesDistinct(t *testing.T) {
	e := NewEncoder(rand.New(rand.NewSource(7)))
	niches := e.pickNiches(3)
	require.Len(t, niches, 3)
	seen := map[string]bool{}
	for _, n := range niches {
		assert.False(t, seen[n], "duplicate niche %q", n)
		seen[n] = true
	}
}

func TestSystemPromptNamesAllKeys(t *testing.T) {
	for _, key := range []string{
		"title", "category", "earnings_min", "earnings_max",
		"time_to_first_dollar_hours", "difficulty", "startup_cost",
		"why_recommended", "action_steps", "required_skills",
		"required_resources", "platforms", "common_pitfalls", "rarity",
	} {
		assert.Contains(t, SystemPrompt, key)
	}
}
