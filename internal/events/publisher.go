// Package events publishes recommendation lifecycle events so out-of-process
// consumers can react without polling the REST API.
package events

// Event types published on the recommendations channel.
const (
	TypeRecommendationCreated = "recommendation.created"
	TypeRecommendationDeleted = "recommendation.deleted"
)

// Event is the wire format for one lifecycle notification.
type Event struct {
	Type             string `json:"type"`
	RecommendationID uint   `json:"recommendation_id"`
	UserID           uint   `json:"user_id,omitempty"`
	WeaponID         uint   `json:"weapon_id,omitempty"`
}

// Publisher fans events out; implementations must treat publish failures as
// their own concern (callers never fail a request over one).
type Publisher interface {
	Publish(event Event) error
	Close() error
}
