package ai

import (
	"testing"

	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeaponSuggestion_CleanJSON(t *testing.T) {
	text := `{"weaponId": 42, "reasoning": "High dragon damage."}`

	got := ParseWeaponSuggestion(text)

	require.NotNil(t, got.WeaponID)
	assert.Equal(t, uint(42), *got.WeaponID)
	assert.Equal(t, "High dragon damage.", got.Reasoning)
}

func TestParseWeaponSuggestion_MarkdownFences(t *testing.T) {
	text := "```json\n{\"weaponId\": 7, \"reasoning\": \"Fenced answer.\"}\n```"

	got := ParseWeaponSuggestion(text)

	require.NotNil(t, got.WeaponID)
	assert.Equal(t, uint(7), *got.WeaponID)
	assert.Equal(t, "Fenced answer.", got.Reasoning)
}

func TestParseWeaponSuggestion_JSONEmbeddedInProse(t *testing.T) {
	text := `Sure! Here is my pick: {"weaponId": 3, "reasoning": "Best elemental match."} Good hunting!`

	got := ParseWeaponSuggestion(text)

	require.NotNil(t, got.WeaponID)
	assert.Equal(t, uint(3), *got.WeaponID)
}

func TestParseWeaponSuggestion_UnparseableFallsBackToRawText(t *testing.T) {
	text := "I recommend the Dragonbone Bow because of its element."

	got := ParseWeaponSuggestion(text)

	assert.Nil(t, got.WeaponID)
	assert.Equal(t, text, got.Reasoning)
}

func TestParseWeaponSuggestion_MissingReasoningKeepsRawText(t *testing.T) {
	text := `{"weaponId": 5}`

	got := ParseWeaponSuggestion(text)

	require.NotNil(t, got.WeaponID)
	assert.Equal(t, text, got.Reasoning)
}

func TestParseMonsterAnalysis_CleanJSON(t *testing.T) {
	monster := models.Monster{Name: "Odogaron", Weaknesses: []string{"ice"}}
	text := `{
		"strengths": ["speed", "bleed"],
		"weaknesses": ["ice", "poison"],
		"recommendedElements": ["ice"],
		"huntingStrategy": "Keep your distance and heal bleed.",
		"difficulty": "Hard"
	}`

	got := ParseMonsterAnalysis(text, monster)

	assert.Equal(t, []string{"speed", "bleed"}, got.Strengths)
	assert.Equal(t, []string{"ice", "poison"}, got.Weaknesses)
	assert.Equal(t, "Hard", got.Difficulty)
}

func TestParseMonsterAnalysis_UnparseableUsesMonsterWeaknesses(t *testing.T) {
	monster := models.Monster{Name: "Odogaron", Weaknesses: []string{"ice", "water"}}
	text := "The beast is fast; bring ice weapons."

	got := ParseMonsterAnalysis(text, monster)

	assert.Empty(t, got.Strengths)
	assert.Equal(t, monster.Weaknesses, got.Weaknesses)
	assert.Empty(t, got.RecommendedElements)
	assert.Equal(t, text, got.HuntingStrategy)
	assert.Equal(t, "N/A", got.Difficulty)
}

func TestParseMonsterAnalysis_PartialJSONFilled(t *testing.T) {
	monster := models.Monster{Name: "Odogaron", Weaknesses: []string{"ice"}}
	text := `{"huntingStrategy": "Stay mobile."}`

	got := ParseMonsterAnalysis(text, monster)

	assert.NotNil(t, got.Strengths)
	assert.Equal(t, monster.Weaknesses, got.Weaknesses)
	assert.Equal(t, "Stay mobile.", got.HuntingStrategy)
	assert.Equal(t, "N/A", got.Difficulty)
}

func TestBuildWeaponPrompt_ListsEverything(t *testing.T) {
	monsters := []models.Monster{
		{ID: 1, Name: "Rathalos", Species: "flying wyvern", Weaknesses: []string{"dragon", "flash"}},
	}
	weapons := []models.Weapon{
		{ID: 9, Name: "Dragonbone Bow", Kind: "bow", Element: "Dragon", Damage: 204, Rarity: 8},
		{ID: 10, Name: "Iron Blade", Kind: "sword", Element: "", Damage: 100, Rarity: 1},
	}
	prefs := map[string]any{"playstyle": "ranged", "rarity": 8}

	prompt := buildWeaponPrompt(prefs, monsters, weapons)

	assert.Contains(t, prompt, "Rathalos (flying wyvern), weaknesses: dragon, flash")
	assert.Contains(t, prompt, "id=9 Dragonbone Bow [bow] element=Dragon damage=204 rarity=8")
	// An empty element renders as the sentinel so the model never invents one.
	assert.Contains(t, prompt, "id=10 Iron Blade [sword] element=No Element damage=100 rarity=1")
	assert.Contains(t, prompt, "playstyle: ranged")
	assert.Contains(t, prompt, "rarity: 8")
	assert.Contains(t, prompt, `{"weaponId": number, "reasoning": "string"}`)
}

func TestBuildWeaponPrompt_PreferenceOrderIsDeterministic(t *testing.T) {
	monsters := []models.Monster{{Name: "Dummy"}}
	prefs := map[string]any{"b": 2, "a": 1, "c": 3}

	first := buildWeaponPrompt(prefs, monsters, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, buildWeaponPrompt(prefs, monsters, nil))
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	monster := models.Monster{
		Name:        "Nergigante",
		Species:     "elder dragon",
		Description: "An elder dragon that feeds on other elders.",
		Weaknesses:  []string{"thunder", "dragon"},
	}

	prompt := buildAnalysisPrompt(monster)

	assert.Contains(t, prompt, "Nergigante (elder dragon)")
	assert.Contains(t, prompt, "An elder dragon that feeds on other elders.")
	assert.Contains(t, prompt, "thunder, dragon")
	assert.Contains(t, prompt, "huntingStrategy")
}
