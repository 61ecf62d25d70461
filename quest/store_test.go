package quest_test

import (
	"context"
	"testing"

	"github.com/sidequest-app/sidequest/server/model"
	"github.com/sidequest-app/sidequest/server/quest"
	"github.com/sidequest-app/sidequest/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuest(t *testing.T, s quest.Store, userID int64, title string) model.Quest {
	t.Helper()
	q := model.Quest{UserID: userID, Status: model.QuestStatusSuggested}
	require.NoError(t, q.SetData(model.QuestData{Title: title, Difficulty: 1}))
	require.NoError(t, s.Insert(context.Background(), &q))
	return q
}

func TestStoreInsertIssuesID(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	q := seedQuest(t, s, 1, "Tutoring")
	assert.NotEmpty(t, q.ID)
}

func TestStoreInsertHonorsGivenID(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	q := model.Quest{ID: "fixed-id", UserID: 1}
	require.NoError(t, s.Insert(context.Background(), &q))
	assert.Equal(t, "fixed-id", q.ID)
}

func TestStoreSelectScopedToOwner(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	seedQuest(t, s, 1, "Mine")
	seedQuest(t, s, 2, "Theirs")

	quests, err := s.Select(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, quests, 1)
	d, err := quests[0].Data()
	require.NoError(t, err)
	assert.Equal(t, "Mine", d.Title)
}

func TestStoreUpdatePersistsPayload(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	q := seedQuest(t, s, 1, "Before")

	q.Status = model.QuestStatusActive
	require.NoError(t, q.SetData(model.QuestData{Title: "After", Difficulty: 3}))
	require.NoError(t, s.Update(context.Background(), &q))

	quests, err := s.Select(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, model.QuestStatusActive, quests[0].Status)
	d, err := quests[0].Data()
	require.NoError(t, err)
	assert.Equal(t, "After", d.Title)
}

func TestStoreDelete(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	q := seedQuest(t, s, 1, "Gone")

	require.NoError(t, s.Delete(context.Background(), 1, q.ID))
	quests, err := s.Select(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, quests)
}

func TestStoreDeleteOtherOwnerIsNoop(t *testing.T) {
	s := quest.NewStore(testutil.SetupTestDB(t))
	q := seedQuest(t, s, 1, "Kept")

	require.NoError(t, s.Delete(context.Background(), 2, q.ID))
	quests, err := s.Select(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, quests, 1)
}
