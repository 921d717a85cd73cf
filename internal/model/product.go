package model

import "time"

// Product is an item listed by a retailer.
type Product struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	RetailerAuthID  string    `json:"retailer_auth_id"`
	RetailerName    string    `json:"retailer_name"`
	RetailerIcon    string    `json:"retailer_icon"`
	TargetSentiment []string  `json:"target_sentiment"`
	LikedBy         []string  `json:"liked_by"`
	NoOfLikes       int       `json:"no_of_likes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Title           *string
	Description     *string
	RetailerName    *string
	RetailerIcon    *string
	TargetSentiment *[]string
}
