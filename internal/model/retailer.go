package model

import "time"

// Retailer is the public profile of a retailer account.
type Retailer struct {
	ID                  string    `json:"id"`
	AuthID              string    `json:"auth_id"`
	OwnerName           string    `json:"owner_name"`
	OrganizationName    string    `json:"organization_name"`
	Username            string    `json:"username"`
	PhoneNumber         string    `json:"phone_number"`
	DateOfEstablishment string    `json:"date_of_establishment"`
	Country             string    `json:"country"`
	ProfilePicture      string    `json:"profile_picture"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RetailerUpdate carries a partial update; nil fields are left untouched.
type RetailerUpdate struct {
	OwnerName           *string `json:"owner_name"`
	OrganizationName    *string `json:"organization_name"`
	Username            *string `json:"username"`
	PhoneNumber         *string `json:"phone_number"`
	DateOfEstablishment *string `json:"date_of_establishment"`
	Country             *string `json:"country"`
	ProfilePicture      *string `json:"profile_picture"`
}
