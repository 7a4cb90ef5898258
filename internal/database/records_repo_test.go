package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwillems/mailintake/internal/intake"
	"github.com/jwillems/mailintake/internal/mime"
	"github.com/jwillems/mailintake/internal/quote"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestRecordHooks_CreateTask(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	hooks := NewRecordHooks(db, nil)

	id, err := hooks.CreateTask(ctx, intake.TaskDraft{
		Title:       "Bel de leverancier",
		Description: "graag voor vrijdag",
		DueDate:     time.Now().AddDate(0, 0, 7),
		Priority:    "medium",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	task, err := db.GetTaskByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bel de leverancier", task.Title)
	assert.Equal(t, "medium", task.Priority)
}

func TestRecordHooks_CreateOrderWithQuote(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	hooks := NewRecordHooks(db, nil)

	data := quote.Data{
		Items:          []quote.Item{quote.NewItem("3x Scharnier", 3, 12.50)},
		SuggestedTotal: 37.50,
	}
	id, err := hooks.CreateOrder(ctx, intake.OrderDraft{
		Email:      &mime.ParsedEmail{From: "jan@klant.nl", Subject: "Bestelling"},
		CustomerID: "c1",
		Quote:      &data,
	})
	require.NoError(t, err)

	order, err := db.GetOrderByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "c1", order.CustomerID)
	assert.Equal(t, "jan@klant.nl", order.FromAddr)
	assert.Equal(t, 37.50, order.SuggestedTotal)
	assert.Contains(t, order.QuoteJSON, "Scharnier")
}

func TestRecordHooks_CreateNotification(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	hooks := NewRecordHooks(db, nil)

	id, err := hooks.CreateNotification(ctx, intake.NotificationDraft{
		Title:   "Nieuwsbrief",
		Message: "inhoud",
	})
	require.NoError(t, err)

	notification, err := db.GetNotificationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Nieuwsbrief", notification.Title)
}

func TestRecordHooks_CreateInteraction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	hooks := NewRecordHooks(db, nil)

	_, err := hooks.CreateInteraction(ctx, intake.InteractionDraft{
		UserID:    "u1",
		Kind:      "email_received",
		EmailFrom: "jan@klant.nl",
		Subject:   "Bestelling",
	})
	require.NoError(t, err)

	interactions, err := db.GetInteractionsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "email_received", interactions[0].Kind)
}

func TestGetTaskByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetTaskByID(context.Background(), "bestaat-niet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordHooks_ShowPreviewForwards(t *testing.T) {
	db := newTestDB(t)

	var seen *mime.ParsedEmail
	hooks := NewRecordHooks(db, func(email *mime.ParsedEmail) { seen = email })

	email := &mime.ParsedEmail{Subject: "Test"}
	hooks.ShowPreview(email)
	assert.Equal(t, email, seen)
}
