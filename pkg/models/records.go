package models

import "time"

// Task is a stored task record synthesized from an inbound email.
type Task struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Priority    string    `db:"priority"`
	CreatedAt   time.Time `db:"created_at"`
}

// Order is a stored order record with the extracted quotation attached
// as JSON.
type Order struct {
	ID             string    `db:"id"`
	CustomerID     string    `db:"customer_id"`
	FromAddr       string    `db:"from_addr"`
	Subject        string    `db:"subject"`
	QuoteJSON      string    `db:"quote_json"`
	SuggestedTotal float64   `db:"suggested_total"`
	CreatedAt      time.Time `db:"created_at"`
}

// Notification is a stored notification record.
type Notification struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// Interaction is a stored customer-interaction record.
type Interaction struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Kind       string    `db:"kind"`
	CustomerID string    `db:"customer_id"`
	EmailFrom  string    `db:"email_from"`
	Subject    string    `db:"subject"`
	CreatedAt  time.Time `db:"created_at"`
}
