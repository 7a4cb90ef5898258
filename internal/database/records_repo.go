package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwillems/mailintake/internal/intake"
	"github.com/jwillems/mailintake/internal/mime"
	"github.com/jwillems/mailintake/pkg/models"
)

// RecordHooks implements intake.Hooks on top of the intake database.
// Each create inserts one row and returns its id.
type RecordHooks struct {
	db      *DB
	preview func(*mime.ParsedEmail)
}

// NewRecordHooks creates database-backed hooks. preview may be nil when
// no human-in-the-loop confirmation surface is wired.
func NewRecordHooks(db *DB, preview func(*mime.ParsedEmail)) *RecordHooks {
	return &RecordHooks{db: db, preview: preview}
}

// CreateTask inserts a task record
func (h *RecordHooks) CreateTask(ctx context.Context, draft intake.TaskDraft) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO tasks (id, title, description, due_date, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query,
		id,
		draft.Title,
		draft.Description,
		draft.DueDate,
		draft.Priority,
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return id, nil
}

// CreateOrder inserts an order record with the extracted quote as JSON
func (h *RecordHooks) CreateOrder(ctx context.Context, draft intake.OrderDraft) (string, error) {
	id := uuid.NewString()

	var quoteJSON string
	var suggestedTotal float64
	if draft.Quote != nil {
		raw, err := json.Marshal(draft.Quote)
		if err != nil {
			return "", fmt.Errorf("failed to encode quote: %w", err)
		}
		quoteJSON = string(raw)
		suggestedTotal = draft.Quote.SuggestedTotal
	}

	var fromAddr, subject string
	if draft.Email != nil {
		fromAddr = draft.Email.From
		subject = draft.Email.Subject
	}

	query := `
		INSERT INTO orders (id, customer_id, from_addr, subject, quote_json, suggested_total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query,
		id,
		draft.CustomerID,
		fromAddr,
		subject,
		quoteJSON,
		suggestedTotal,
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

// CreateNotification inserts a notification record
func (h *RecordHooks) CreateNotification(ctx context.Context, draft intake.NotificationDraft) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO notifications (id, title, message, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query, id, draft.Title, draft.Message, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return id, nil
}

// CreateInteraction inserts an interaction record
func (h *RecordHooks) CreateInteraction(ctx context.Context, draft intake.InteractionDraft) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO interactions (id, user_id, kind, customer_id, email_from, subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query,
		id,
		draft.UserID,
		draft.Kind,
		draft.CustomerID,
		draft.EmailFrom,
		draft.Subject,
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create interaction: %w", err)
	}
	return id, nil
}

// ShowPreview forwards to the wired preview surface, if any
func (h *RecordHooks) ShowPreview(email *mime.ParsedEmail) {
	if h.preview != nil {
		h.preview(email)
	}
}

// GetTaskByID returns a task by ID
func (db *DB) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	query := `SELECT * FROM tasks WHERE id = ?`
	err := db.GetContext(ctx, &task, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// GetOrderByID returns an order by ID
func (db *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE id = ?`
	err := db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetNotificationByID returns a notification by ID
func (db *DB) GetNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	query := `SELECT * FROM notifications WHERE id = ?`
	err := db.GetContext(ctx, &notification, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

// GetInteractionsByUser returns all interactions recorded for a user
func (db *DB) GetInteractionsByUser(ctx context.Context, userID string) ([]*models.Interaction, error) {
	var interactions []*models.Interaction
	query := `SELECT * FROM interactions WHERE user_id = ? ORDER BY created_at DESC`
	err := db.SelectContext(ctx, &interactions, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	return interactions, nil
}
