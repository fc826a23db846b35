// Package ai adapts the Gemini text-generation API: it builds prompts from
// catalog records, calls the model, and parses the answer with an explicit
// fallback so malformed model output never becomes an error.
package ai

import (
	"context"

	"github.com/hunterlab/monster-advisor/internal/models"
)

// WeaponSuggestion is the structured answer expected from the model for a
// weapon-recommendation prompt. WeaponID is nil when the model's output
// could not be parsed; Reasoning then carries the raw text.
type WeaponSuggestion struct {
	WeaponID  *uint  `json:"weaponId"`
	Reasoning string `json:"reasoning"`
}

// MonsterAnalysis is the structured answer for an analysis prompt.
type MonsterAnalysis struct {
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	RecommendedElements []string `json:"recommendedElements"`
	HuntingStrategy     string   `json:"huntingStrategy"`
	Difficulty          string   `json:"difficulty"`
}

// Advisor is what the services depend on; tests substitute a stub.
// Both methods return an error only for transport-level failures —
// unparseable model output is resolved through the fallback shapes above.
type Advisor interface {
	WeaponRecommendation(ctx context.Context, prefs map[string]any, monsters []models.Monster, weapons []models.Weapon) (*WeaponSuggestion, error)
	AnalyzeMonster(ctx context.Context, monster models.Monster) (*MonsterAnalysis, error)
}
