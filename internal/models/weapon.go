package models

import "time"

// NoElement is the sentinel used by the catalog import for weapons without
// an elemental special.
const NoElement = "No Element"

type Weapon struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"type:varchar(150);not null" json:"name"`
	Kind   string `gorm:"type:varchar(50)" json:"kind"`
	Rarity int    `gorm:"not null" json:"rarity"`
	Damage int    `gorm:"not null" json:"damage"`
	// Element may be empty or the NoElement sentinel.
	Element string `gorm:"type:varchar(50)" json:"element"`
	// DamageElement stays textual: the catalog delivers display strings
	// ("330", "270 (hidden)") and nothing computes with the value.
	DamageElement string    `gorm:"type:varchar(50)" json:"damageElement"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasElement reports whether the weapon carries a real elemental tag.
func (w Weapon) HasElement() bool {
	return w.Element != "" && w.Element != NoElement
}
