package models

import (
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);not null" json:"username"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Recommendations []Recommendation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidateUser checks user fields before creation. Validation lives here as
// an explicit function (not a persistence hook) so callers can surface
// per-field messages.
func ValidateUser(username, email, password string) []string {
	var details []string
	if username == "" {
		details = append(details, "Username is required")
	}
	if email == "" {
		details = append(details, "Email is required")
	} else if !emailRegex.MatchString(email) {
		details = append(details, "Email must be valid")
	}
	if password == "" {
		details = append(details, "Password is required")
	} else if len(password) < 8 {
		details = append(details, "Password must be at least 8 characters")
	}
	return details
}
