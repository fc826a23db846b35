package models

import "time"

type Recommendation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	WeaponID  uint      `gorm:"not null" json:"weaponId"`
	Reasoning string    `gorm:"type:text" json:"reasoning"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"User"`
	Weapon Weapon `gorm:"foreignKey:WeaponID" json:"Weapon"`
}
