package intake

import (
	"context"
	"time"

	"github.com/jwillems/mailintake/internal/mime"
	"github.com/jwillems/mailintake/internal/quote"
)

// TaskDraft is the minimal task synthesized from a task-classified email.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
}

// OrderDraft carries the parsed email, the extracted quotation and the
// resolved customer (empty when no automatic match was found).
type OrderDraft struct {
	Email      *mime.ParsedEmail
	CustomerID string
	Quote      *quote.Data
}

// NotificationDraft is the payload for notification-classified emails.
type NotificationDraft struct {
	Title   string
	Message string
}

// InteractionDraft records a generic "email received" interaction for
// the current user.
type InteractionDraft struct {
	UserID     string
	Kind       string
	CustomerID string
	EmailFrom  string
	Subject    string
}

// Hooks are the record-creation capabilities the orchestrator depends
// on. Each create returns the id of the created record. ShowPreview is
// a human-in-the-loop hook invoked before any record is committed.
type Hooks interface {
	CreateTask(ctx context.Context, draft TaskDraft) (string, error)
	CreateOrder(ctx context.Context, draft OrderDraft) (string, error)
	CreateNotification(ctx context.Context, draft NotificationDraft) (string, error)
	CreateInteraction(ctx context.Context, draft InteractionDraft) (string, error)
	ShowPreview(email *mime.ParsedEmail)
}

// NopHooks is a Hooks implementation that creates nothing. Useful in
// tests and dry runs.
type NopHooks struct{}

func (NopHooks) CreateTask(context.Context, TaskDraft) (string, error) { return "", nil }

func (NopHooks) CreateOrder(context.Context, OrderDraft) (string, error) { return "", nil }

func (NopHooks) CreateNotification(context.Context, NotificationDraft) (string, error) {
	return "", nil
}

func (NopHooks) CreateInteraction(context.Context, InteractionDraft) (string, error) {
	return "", nil
}

func (NopHooks) ShowPreview(*mime.ParsedEmail) {}
