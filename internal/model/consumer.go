package model

import "time"

// Consumer is the public profile of a consumer account.
type Consumer struct {
	ID             string    `json:"id"`
	AuthID         string    `json:"auth_id"`
	FullName       string    `json:"full_name"`
	Username       string    `json:"username"`
	PhoneNumber    string    `json:"phone_number"`
	DOB            string    `json:"dob"`
	Gender         string    `json:"gender"`
	Country        string    `json:"country"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ConsumerUpdate carries a partial update; nil fields are left untouched.
type ConsumerUpdate struct {
	FullName       *string `json:"full_name"`
	Username       *string `json:"username"`
	PhoneNumber    *string `json:"phone_number"`
	DOB            *string `json:"dob"`
	Gender         *string `json:"gender"`
	Country        *string `json:"country"`
	ProfilePicture *string `json:"profile_picture"`
}
