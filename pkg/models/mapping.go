package models

import "time"

// EmailCustomerMapping links a sender address to a known customer.
// The email is stored lowercased and is unique within the persisted
// collection; saving a mapping for an existing email replaces it.
type EmailCustomerMapping struct {
	Email      string    `json:"email"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}
