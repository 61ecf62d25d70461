package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractFn is one strategy for recovering a JSON array from decoded content.
// It returns false when the strategy does not apply.
type extractFn func([]byte) ([]json.RawMessage, bool)

// arrayStrategies are tried in order; the first array found wins. Models asked
// for a bare array often wrap it in an object under an improvised key, so each
// known wrapper key is its own strategy. Adding a new accepted shape is one line.
var arrayStrategies = []extractFn{
	bareArray,
	wrappedArray("sideHustles"),
	wrappedArray("side_hustles"),
	wrappedArray("quests"),
	wrappedArray("recommendations"),
	wrappedArray("data"),
}

// ExtractArray recovers a JSON array from raw LLM text output. It strips
// markdown code fences, then tries each accepted shape in order.
func ExtractArray(raw string) ([]json.RawMessage, error) {
	cleaned := strings.TrimSpace(stripCodeFences(raw))
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}
	for _, strategy := range arrayStrategies {
		if arr, ok := strategy([]byte(cleaned)); ok {
			return arr, nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON array found in response", ErrInvalidOutput)
}

func bareArray(data []byte) ([]json.RawMessage, bool) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func wrappedArray(key string) extractFn {
	return func(data []byte) ([]json.RawMessage, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, false
		}
		inner, ok := obj[key]
		if !ok {
			return nil, false
		}
		return bareArray(inner)
	}
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
