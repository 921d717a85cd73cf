package model

import "time"

// Review is a consumer's write-up of a product.
type Review struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	Sentiments     []string  `json:"sentiments"`
	ProductName    string    `json:"product_name"`
	ProductImage   string    `json:"product_image"`
	Likes          int       `json:"likes"`
	LikedBy        []string  `json:"liked_by"`
	AuthorID       string    `json:"author_id"`
	AuthorLocation string    `json:"author_location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReviewUpdate carries a partial update; nil fields are left untouched.
type ReviewUpdate struct {
	Title          *string
	Description    *string
	Sentiments     *[]string
	ProductName    *string
	ProductImage   *string
	AuthorLocation *string
}
