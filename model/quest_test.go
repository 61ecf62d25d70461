package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocalID(t *testing.T) {
	assert.True(t, IsLocalID("local-123"))
	assert.True(t, IsLocalID(LocalIDPrefix))
	assert.False(t, IsLocalID("123-local"))
	assert.False(t, IsLocalID(""))
}

func TestQuestDataRoundTrip(t *testing.T) {
	q := &Quest{}
	in := QuestData{
		Title:          "Tutoring",
		Category:       CategoryService,
		Difficulty:     2,
		ActionSteps:    []string{"a", "b"},
		CompletedSteps: []int{0},
		Progress:       50,
		Rarity:         RarityRare,
	}
	require.NoError(t, q.SetData(in))
	out, err := q.Data()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestQuestDataEmptyPayload(t *testing.T) {
	q := &Quest{}
	out, err := q.Data()
	require.NoError(t, err)
	assert.Empty(t, out.Title)
}

func TestProfileSnapshotRoundTrip(t *testing.T) {
	p := &Profile{UserID: 1}
	in := UserProfile{
		Skills:                []string{"writing"},
		AvailableHoursPerWeek: 10,
		LocationType:          LocationHybrid,
	}
	require.NoError(t, p.SetSnapshot(in))
	out, err := p.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
