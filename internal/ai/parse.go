package ai

import (
	"encoding/json"
	"strings"

	"github.com/hunterlab/monster-advisor/internal/models"
)

// ParseWeaponSuggestion extracts a WeaponSuggestion from model output.
// Parse failures never surface as errors: the raw text becomes the
// reasoning and WeaponID stays nil, which activates the caller's
// score-based fallback.
func ParseWeaponSuggestion(text string) *WeaponSuggestion {
	var out WeaponSuggestion
	if ok := unmarshalLenient(text, &out); !ok {
		return &WeaponSuggestion{WeaponID: nil, Reasoning: text}
	}
	if out.Reasoning == "" {
		out.Reasoning = text
	}
	return &out
}

// ParseMonsterAnalysis extracts a MonsterAnalysis from model output. On
// parse failure the monster's own weakness list stands in for the model's,
// the raw text becomes the strategy, and difficulty reads "N/A".
func ParseMonsterAnalysis(text string, monster models.Monster) *MonsterAnalysis {
	var out MonsterAnalysis
	if ok := unmarshalLenient(text, &out); !ok {
		return &MonsterAnalysis{
			Strengths:           []string{},
			Weaknesses:          monster.Weaknesses,
			RecommendedElements: []string{},
			HuntingStrategy:     text,
			Difficulty:          "N/A",
		}
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Weaknesses == nil {
		out.Weaknesses = monster.Weaknesses
	}
	if out.RecommendedElements == nil {
		out.RecommendedElements = []string{}
	}
	if out.Difficulty == "" {
		out.Difficulty = "N/A"
	}
	return &out
}

// unmarshalLenient tries the text as-is, then without markdown fences, then
// the substring between the outermost braces. Reports whether any attempt
// produced a valid JSON object.
func unmarshalLenient(text string, v any) bool {
	candidates := []string{strings.TrimSpace(text)}

	if stripped := stripFences(text); stripped != "" {
		candidates = append(candidates, stripped)
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, c := range candidates {
		if json.Unmarshal([]byte(c), v) == nil {
			return true
		}
	}
	return false
}

func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
