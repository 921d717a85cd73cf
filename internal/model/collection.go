package model

import "time"

// Collection holds the review and product ids a consumer has saved.
type Collection struct {
	ConsumerAuthID string    `json:"consumer_auth_id"`
	SavedReviews   []string  `json:"saved_reviews"`
	SavedProducts  []string  `json:"saved_products"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
