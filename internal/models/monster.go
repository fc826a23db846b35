package models

import "time"

// Monster is a catalog entry populated by the cmd/seed importer.
// Weaknesses are lowercase element/status/effect tags ("fire", "poison").
type Monster struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Species     string    `gorm:"type:varchar(100)" json:"species"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	Weaknesses  []string  `gorm:"type:text;serializer:json" json:"weaknesses"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
