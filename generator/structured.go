package generator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CompleteJSON asks the model for a JSON reply and decodes it into T. The
// completion may wrap the JSON in fences or prose; the first well-formed
// value wins. Top-level fields named in defaults are patched in when the
// model omits them. parsed is false when no usable JSON arrived within
// maxRetries attempts; the error return is reserved for transport failures.
func CompleteJSON[T any](ctx context.Context, llm LLMClient, prompt Prompt, maxRetries int, defaults map[string]any) (data T, parsed bool, err error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, cerr := llm.Complete(ctx, prompt)
		if cerr != nil {
			return data, false, cerr
		}
		jsonStr, ok := extractJSON(prompt.Prefill, raw)
		if !ok {
			continue
		}
		jsonStr = patchDefaults(jsonStr, defaults)
		var candidate T
		if derr := json.Unmarshal([]byte(jsonStr), &candidate); derr == nil {
			return candidate, true, nil
		}
	}
	return data, false, nil
}

// extractJSON locates the first JSON object or array in a completion. When
// a prefill was sent the model continues it, so the glued form is tried
// first; a model that restated the prefill makes the glue unbalanced and
// falls through to the bare completion.
func extractJSON(prefill, completion string) (string, bool) {
	candidates := []string{completion}
	if prefill != "" {
		candidates = []string{prefill + completion, completion}
	}
	for _, cand := range candidates {
		if s, ok := firstJSONValue(cand); ok {
			return s, true
		}
	}
	return "", false
}

func firstJSONValue(s string) (string, bool) {
	s = stripFences(s)
	pairs := [][2]string{{"{", "}"}, {"[", "]"}}
	if obj, arr := strings.Index(s, "{"), strings.Index(s, "["); arr >= 0 && (obj < 0 || arr < obj) {
		pairs = [][2]string{{"[", "]"}, {"{", "}"}}
	}
	for _, pair := range pairs {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start >= 0 && end > start {
			if cand := s[start : end+1]; gjson.Valid(cand) {
				return cand, true
			}
		}
	}
	return "", false
}

// stripFences unwraps a ```json style fence around the whole reply.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// patchDefaults sets each missing top-level field on the JSON document.
func patchDefaults(jsonStr string, defaults map[string]any) string {
	for key, val := range defaults {
		if gjson.Get(jsonStr, key).Exists() {
			continue
		}
		if patched, err := sjson.Set(jsonStr, key, val); err == nil {
			jsonStr = patched
		}
	}
	return jsonStr
}
