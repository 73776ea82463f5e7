package entity

import (
	"time"
)

// Client is a CRM contact record. It is owned by the user that created it
// and assigned to exactly one user.
type Client struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company    string    `bson:"company,omitempty" json:"company,omitempty"`
	Tags       []string  `bson:"tags" json:"tags"`
	CreatedBy  string    `bson:"created_by" json:"created_by"`
	AssignedTo string    `bson:"assigned_to" json:"assigned_to"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
