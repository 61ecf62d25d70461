package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArrayBare(t *testing.T) {
	arr, err := ExtractArray(`[{"title":"a"},{"title":"b"}]`)
	require.NoError(t, err)
	assert.Len(t, arr, 2)
}

func TestExtractArrayFenced(t *testing.T) {
	raw := "```json\n[{\"title\":\"a\"}]\n```"
	arr, err := ExtractArray(raw)
	require.NoError(t, err)
	assert.Len(t, arr, 1)
}

func TestExtractArrayWrapped(t *testing.T) {
	for _, key := range []string{"sideHustles", "side_hustles", "quests", "recommendations", "data"} {
		arr, err := ExtractArray(`{"` + key + `":[{"title":"a"},{"title":"b"},{"title":"c"}]}`)
		require.NoError(t, err, key)
		assert.Len(t, arr, 3, key)
	}
}

func TestExtractArrayFencedWrapper(t *testing.T) {
	raw := "Here you go:\n```json\n{\"quests\": [{\"title\":\"a\"}]}\n```"
	// Leading prose before the fence makes the whole thing unparseable; the
	// fence stripper only removes fence lines, not prose.
	_, err := ExtractArray(raw)
	assert.Error(t, err)

	arr, err := ExtractArray("```json\n{\"quests\": [{\"title\":\"a\"}]}\n```")
	require.NoError(t, err)
	assert.Len(t, arr, 1)
}

func TestExtractArrayUnknownWrapperKey(t *testing.T) {
	_, err := ExtractArray(`{"results":[{"title":"a"}]}`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractArrayEmpty(t *testing.T) {
	_, err := ExtractArray("")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = ExtractArray("```json\n```")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractArrayProse(t *testing.T) {
	_, err := ExtractArray("I cannot help with that request.")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractArrayEmptyArray(t *testing.T) {
	arr, err := ExtractArray("[]")
	require.NoError(t, err)
	assert.Empty(t, arr)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "[1]", stripCodeFences("```json\n[1]\n```"))
	assert.Equal(t, "[1]", stripCodeFences("```\n[1]\n```"))
	assert.Equal(t, "plain", stripCodeFences("plain"))
}
