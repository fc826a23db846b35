package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hunterlab/monster-advisor/internal/models"
)

// buildWeaponPrompt enumerates the hunted monsters and every candidate
// weapon so the model can only answer with a weaponId that exists.
func buildWeaponPrompt(prefs map[string]any, monsters []models.Monster, weapons []models.Weapon) string {
	var sb strings.Builder

	sb.WriteString("You are a Monster Hunter weapon advisor.\n")
	sb.WriteString("Pick the single best weapon for the hunt below and explain why.\n\n")

	sb.WriteString("Monsters to hunt:\n")
	for _, m := range monsters {
		sb.WriteString(fmt.Sprintf("  - %s (%s), weaknesses: %s\n",
			m.Name, m.Species, strings.Join(m.Weaknesses, ", ")))
	}

	if len(prefs) > 0 {
		sb.WriteString("\nHunter preferences:\n")
		for _, k := range sortedKeys(prefs) {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", k, prefs[k]))
		}
	}

	sb.WriteString("\nAvailable weapons (choose one by id):\n")
	for _, w := range weapons {
		element := w.Element
		if element == "" {
			element = models.NoElement
		}
		sb.WriteString(fmt.Sprintf("  - id=%d %s [%s] element=%s damage=%d rarity=%d\n",
			w.ID, w.Name, w.Kind, element, w.Damage, w.Rarity))
	}

	sb.WriteString("\nReturn ONLY JSON with this schema:\n")
	sb.WriteString(`{"weaponId": number, "reasoning": "string"}` + "\n")
	sb.WriteString("weaponId must be one of the ids listed above.\n")

	return sb.String()
}

// buildAnalysisPrompt asks for a structured battle analysis of one monster.
func buildAnalysisPrompt(monster models.Monster) string {
	var sb strings.Builder

	sb.WriteString("You are a Monster Hunter field researcher.\n")
	sb.WriteString(fmt.Sprintf("Analyze the monster %s (%s).\n", monster.Name, monster.Species))
	if monster.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", monster.Description))
	}
	if len(monster.Weaknesses) > 0 {
		sb.WriteString(fmt.Sprintf("Known weaknesses: %s\n", strings.Join(monster.Weaknesses, ", ")))
	}

	sb.WriteString("\nReturn ONLY JSON with this schema:\n")
	sb.WriteString(`{
  "strengths": ["string"],
  "weaknesses": ["string"],
  "recommendedElements": ["string"],
  "huntingStrategy": "string",
  "difficulty": "string"
}` + "\n")

	return sb.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
