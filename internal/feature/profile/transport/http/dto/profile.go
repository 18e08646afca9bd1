// Package dto defines request and response bodies for the profile endpoints.
package dto

import "auction_backend/internal/feature/profile/domain/entity"

// UpdateProfileRequest is the body of PUT /profile. Omitted fields stay
// unchanged and an empty string clears an address field.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	House     *string `json:"house" binding:"omitempty,max=64"`
	Street    *string `json:"street" binding:"omitempty,max=64"`
	Postcode  *string `json:"postcode" binding:"omitempty,max=5"`
	City      *string `json:"city" binding:"omitempty,max=64"`
	Country   *string `json:"country" binding:"omitempty,max=64"`
}

// ProfileResponse is the body of GET and PUT /profile.
type ProfileResponse struct {
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	House     *string `json:"house"`
	Street    *string `json:"street"`
	Postcode  *string `json:"postcode"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// NewProfileResponse converts the read model. Cleared fields render as null.
func NewProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		House:     p.Contact.House,
		Street:    p.Contact.Street,
		Postcode:  p.Contact.Postcode,
		City:      p.Contact.City,
		Country:   p.Contact.Country,
	}
}
