package models

import (
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Usage is the token usage of one generation, normalized across providers.
type Usage struct {
	InputTokens       int
	OutputTokens      int
	TotalTokens       int
	CachedInputTokens int
	ReasoningTokens   int

	// Duration is the wall time of the generation.
	Duration time.Duration
}

// convertUsage extracts normalized token usage from the first choice's
// GenerationInfo.
func convertUsage(resp *llms.ContentResponse) Usage {
	var u Usage
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return u
	}
	info := resp.Choices[0].GenerationInfo
	if info == nil {
		return u
	}

	u.InputTokens = extractInputTokens(info)
	u.OutputTokens = extractOutputTokens(info)
	u.TotalTokens = extractTotalTokens(info, u.InputTokens, u.OutputTokens)
	u.CachedInputTokens = extractCachedInputTokens(info)
	u.ReasoningTokens = extractReasoningTokens(info)
	return u
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	return getIntFromMap(info, "input_tokens")
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "output_tokens")
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// extractCachedInputTokens extracts cached input token count from GenerationInfo.
func extractCachedInputTokens(info map[string]any) int {
	// OpenAI
	if v := getIntFromMap(info, "PromptCachedTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "CacheReadInputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "CachedTokens")
}

// extractReasoningTokens extracts reasoning/thinking token count from GenerationInfo.
func extractReasoningTokens(info map[string]any) int {
	for _, key := range []string{"ReasoningTokens", "CompletionReasoningTokens", "ThinkingTokens"} {
		if v := getIntFromMap(info, key); v > 0 {
			return v
		}
	}
	return 0
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}
