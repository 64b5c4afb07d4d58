package models

import "time"

// Contact is a person an appointment can be booked with. A contact may have
// many time slots; a time slot holds at most one contact reference.
type Contact struct {
	ID          string    `bson:"id" json:"id"`
	FirstName   string    `bson:"first_name" json:"first_name"`
	LastName    string    `bson:"last_name" json:"last_name"`
	Email       string    `bson:"email" json:"email"` // Uniqueness enforced at the service layer, not by the store
	PhoneNumber string    `bson:"phone_number" json:"phone_number"` // Free-form; validated as E.164 only at publish time
	Timezone    string    `bson:"timezone" json:"timezone"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName joins first and last name, tolerating either being empty.
func (c *Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// ContactResponse is the API representation of a Contact.
type ContactResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Timezone    string `json:"timezone,omitempty"`
}

func (c *Contact) ToResponse() *ContactResponse {
	return &ContactResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		FullName:    c.FullName(),
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Timezone:    c.Timezone,
	}
}
