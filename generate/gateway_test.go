package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidequest-app/sidequest/server/llm"
	"github.com/sidequest-app/sidequest/server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeChatServer returns an OpenAI-style completion whose message content is
// the given string.
func fakeChatServer(content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func gatewayFor(t *testing.T, srv *httptest.Server) *Gateway {
	t.Helper()
	return NewGateway(llm.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
	}, zap.NewNop())
}

var testProfile = model.UserProfile{
	Skills:                []string{"writing"},
	AvailableHoursPerWeek: 10,
}

func TestGenerateWithoutKeyUsesEngine(t *testing.T) {
	gw := NewGateway(llm.Config{}, zap.NewNop())
	out := gw.Generate(context.Background(), testProfile)
	require.NotEmpty(t, out)
	assert.Equal(t, NewEngine().Recommend(testProfile), out)
}

func TestGenerateParsesBareArray(t *testing.T) {
	srv := fakeChatServer(`[
		{"title":"Ghostwriting","category":"freelance","earnings_min":100,"earnings_max":900,"difficulty":2,"action_steps":["a","b"],"rarity":"rare"},
		{"title":"Pet Portraits","category":"service","difficulty":3}
	]`)
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	require.Len(t, out, 2)
	assert.Equal(t, "Ghostwriting", out[0].Title)
	assert.Equal(t, model.QuestCategory("freelance"), out[0].Category)
	assert.Equal(t, model.RarityRare, out[0].Rarity)
}

func TestGenerateParsesFencedWrapperObject(t *testing.T) {
	srv := fakeChatServer("```json\n{\"quests\": [{\"title\":\"Ghostwriting\",\"category\":\"freelance\",\"difficulty\":2}]}\n```")
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	require.Len(t, out, 1)
	assert.Equal(t, "Ghostwriting", out[0].Title)
}

func TestGenerateTruncatesToThree(t *testing.T) {
	srv := fakeChatServer(`[
		{"title":"A","difficulty":1},{"title":"B","difficulty":1},
		{"title":"C","difficulty":1},{"title":"D","difficulty":1},
		{"title":"E","difficulty":1}
	]`)
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	assert.Len(t, out, 3)
}

func TestGenerateSanitizesFields(t *testing.T) {
	srv := fakeChatServer(`[{
		"title":"Weird",
		"category":"astrology",
		"difficulty":9,
		"earnings_min":500,
		"earnings_max":100,
		"startup_cost":-20,
		"time_to_first_dollar_hours":-1,
		"rarity":"mythic",
		"progress":55,
		"completed_steps":[0,1]
	}]`)
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	require.Len(t, out, 1)
	q := out[0]
	assert.Equal(t, 5, q.Difficulty)
	assert.Equal(t, float64(100), q.EarningsMin)
	assert.Equal(t, float64(500), q.EarningsMax)
	assert.Equal(t, float64(0), q.StartupCost)
	assert.Equal(t, float64(0), q.TimeToFirstDollarHours)
	assert.Equal(t, model.CategoryFreelance, q.Category)
	assert.Equal(t, model.RarityCommon, q.Rarity)
	assert.Zero(t, q.Progress)
	assert.Nil(t, q.CompletedSteps)
}

func TestGenerateSkipsUntitledElements(t *testing.T) {
	srv := fakeChatServer(`[{"title":"  "},{"title":"Real One","difficulty":2}]`)
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	require.Len(t, out, 1)
	assert.Equal(t, "Real One", out[0].Title)
}

func TestGenerateFallsBackOnProse(t *testing.T) {
	srv := fakeChatServer("Sorry, I can't produce JSON today.")
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	assert.Equal(t, NewEngine().Recommend(testProfile), out)
}

func TestGenerateFallsBackOnEmptyArray(t *testing.T) {
	srv := fakeChatServer("[]")
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	assert.Equal(t, NewEngine().Recommend(testProfile), out)
}

func TestGenerateFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	assert.Equal(t, NewEngine().Recommend(testProfile), out)
}

func TestGenerateFallsBackOnUnreachableEndpoint(t *testing.T) {
	srv := fakeChatServer("[]")
	srv.Close() // closed immediately: connection refused

	out := gatewayFor(t, srv).Generate(context.Background(), testProfile)
	assert.Equal(t, NewEngine().Recommend(testProfile), out)
}
