package client

import (
	"time"
)

// Client is a customer that invoices are addressed to. Only Name and Email
// may change after creation.
type Client struct {
	ID          string     `json:"clientId" dynamodbav:"clientId"`
	Name        string     `json:"name" dynamodbav:"name"`
	Email       string     `json:"email" dynamodbav:"email"`
	Address     string     `json:"address" dynamodbav:"address"`
	PhoneNumber string     `json:"phoneNumber" dynamodbav:"phoneNumber"`
	CreatedAt   time.Time  `json:"createdAt" dynamodbav:"createdAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" dynamodbav:"deletedAt,omitempty"`
}

type Filter struct {
	Name  *string
	Email *string
}

type Update struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the update carries no mutable field.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}
