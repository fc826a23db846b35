// Package recommend holds the weapon-selection engine: a deterministic
// effectiveness heuristic plus the fallback path used when the AI-suggested
// weapon id does not resolve to a catalog weapon.
package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hunterlab/monster-advisor/internal/models"
)

// ErrNoWeapons is returned when the candidate set is empty. Callers must
// treat it as terminal (404) rather than degrading further.
var ErrNoWeapons = errors.New("no weapons available")

const maxAlternatives = 3

// Candidate pairs a weapon with its effectiveness score against a monster.
type Candidate struct {
	Weapon models.Weapon `json:"weapon"`
	Score  int           `json:"effectivenessScore"`
}

// Selection is the engine's full answer for one monster.
type Selection struct {
	Weapon            models.Weapon
	Score             int
	Reasoning         string
	FallbackUsed      bool
	MatchedWeaknesses []string
	Alternatives      []Candidate
}

// EffectivenessScore rates a weapon against a monster on a 50-100 scale.
// Pure function: base 50, +30 for an elemental match against a weakness,
// +10 per full 100 damage, +2 per rarity tier, clamped at 100.
func EffectivenessScore(monster models.Monster, weapon models.Weapon) int {
	score := 50
	if weapon.HasElement() && weaknessMatches(monster.Weaknesses, weapon.Element) {
		score += 30
	}
	score += (weapon.Damage / 100) * 10
	score += weapon.Rarity * 2
	if score > 100 {
		score = 100
	}
	return score
}

// MatchedWeaknesses returns the monster weaknesses the weapon's element
// covers (case-insensitive equality). Empty when the weapon has no element.
func MatchedWeaknesses(monster models.Monster, weapon models.Weapon) []string {
	matched := []string{}
	if !weapon.HasElement() {
		return matched
	}
	for _, w := range monster.Weaknesses {
		if strings.EqualFold(w, weapon.Element) {
			matched = append(matched, w)
		}
	}
	return matched
}

// SelectWeapon picks the recommended weapon for a monster.
//
// If aiWeaponID resolves to a weapon in the candidate set, that weapon wins
// and aiReasoning is kept verbatim. Otherwise the highest-scoring candidate
// wins (stable sort: ties keep original candidate order) and the reasoning
// is replaced with a generated explanation naming the unresolved id.
func SelectWeapon(monster models.Monster, weapons []models.Weapon, aiWeaponID *uint, aiReasoning string) (*Selection, error) {
	if len(weapons) == 0 {
		return nil, ErrNoWeapons
	}

	sel := &Selection{}

	if chosen := resolve(weapons, aiWeaponID); chosen != nil {
		sel.Weapon = *chosen
		sel.Reasoning = aiReasoning
	} else {
		ranked := rank(monster, weapons)
		sel.Weapon = ranked[0].Weapon
		sel.FallbackUsed = true
		sel.Reasoning = fallbackReasoning(monster, sel.Weapon, aiWeaponID)
	}

	sel.Score = EffectivenessScore(monster, sel.Weapon)
	sel.MatchedWeaknesses = MatchedWeaknesses(monster, sel.Weapon)
	sel.Alternatives = Alternatives(monster, weapons, sel.Weapon.ID)

	return sel, nil
}

// Alternatives scores every candidate except the chosen weapon and returns
// the top three, ties broken by original order.
func Alternatives(monster models.Monster, weapons []models.Weapon, chosenID uint) []Candidate {
	rest := make([]models.Weapon, 0, len(weapons))
	for _, w := range weapons {
		if w.ID != chosenID {
			rest = append(rest, w)
		}
	}

	ranked := rank(monster, rest)
	if len(ranked) > maxAlternatives {
		ranked = ranked[:maxAlternatives]
	}
	return ranked
}

// rank scores all weapons and sorts descending. The sort is stable so equal
// scores preserve the original candidate order — first seen wins.
func rank(monster models.Monster, weapons []models.Weapon) []Candidate {
	ranked := make([]Candidate, 0, len(weapons))
	for _, w := range weapons {
		ranked = append(ranked, Candidate{Weapon: w, Score: EffectivenessScore(monster, w)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func resolve(weapons []models.Weapon, id *uint) *models.Weapon {
	if id == nil {
		return nil
	}
	for i := range weapons {
		if weapons[i].ID == *id {
			return &weapons[i]
		}
	}
	return nil
}

func fallbackReasoning(monster models.Monster, chosen models.Weapon, requested *uint) string {
	requestedDesc := "none"
	if requested != nil {
		requestedDesc = fmt.Sprintf("%d", *requested)
	}
	return fmt.Sprintf(
		"The suggested weapon id (%s) is not in the available set, so %s was selected by effectiveness against %s's weaknesses (%s).",
		requestedDesc,
		chosen.Name,
		monster.Name,
		strings.Join(monster.Weaknesses, ", "),
	)
}

func weaknessMatches(weaknesses []string, element string) bool {
	for _, w := range weaknesses {
		if strings.EqualFold(w, element) {
			return true
		}
	}
	return false
}
