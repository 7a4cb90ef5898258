package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jwillems/mailintake/internal/classify"
	"github.com/jwillems/mailintake/internal/customer"
	"github.com/jwillems/mailintake/internal/mime"
	"github.com/jwillems/mailintake/internal/quote"
	"github.com/jwillems/mailintake/pkg/models"
)

// maxRecentEntries bounds the in-memory activity log.
const maxRecentEntries = 10

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ProcessedEmail is one audit entry per ingested file.
type ProcessedEmail struct {
	ID             string            `json:"id"`
	Email          *mime.ParsedEmail `json:"email,omitempty"`
	Workflow       models.Workflow   `json:"workflow"`
	WorkflowItemID string            `json:"workflow_item_id,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Status         string            `json:"status"`
	Message        string            `json:"message"`
}

// InboundFile is a dropped or selected file. Open reads its raw bytes;
// it may perform I/O and is called once per file.
type InboundFile struct {
	Name        string
	ContentType string
	Open        func(ctx context.Context) ([]byte, error)
}

// Orchestrator drives the per-file pipeline: read, parse, classify,
// resolve the customer and invoke the record-creation hooks. Files are
// processed sequentially in drop order; a failure in one file never
// aborts the rest of the batch. The orchestrator is single-operator
// state and is not safe for concurrent use.
type Orchestrator struct {
	hooks     Hooks
	resolver  *customer.Resolver
	extractor *quote.Extractor
	logger    *slog.Logger
	userID    string
	dueDays   int

	dragging   bool
	processing bool
	recent     []ProcessedEmail
}

// Config carries the orchestrator dependencies.
type Config struct {
	Hooks     Hooks
	Resolver  *customer.Resolver
	Extractor *quote.Extractor
	Logger    *slog.Logger
	// UserID enables interaction records when non-empty.
	UserID string
	// TaskDueDays is the default due-date offset for synthesized tasks.
	TaskDueDays int
}

// NewOrchestrator creates an orchestrator. A nil Hooks falls back to
// NopHooks.
func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.Hooks == nil {
		cfg.Hooks = NopHooks{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Extractor == nil {
		cfg.Extractor = quote.NewExtractor(0, 0)
	}
	if cfg.TaskDueDays <= 0 {
		cfg.TaskDueDays = 7
	}
	return &Orchestrator{
		hooks:     cfg.Hooks,
		resolver:  cfg.Resolver,
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
		userID:    cfg.UserID,
		dueDays:   cfg.TaskDueDays,
	}
}

// DragEnter marks the drop target as hovered. Visual feedback only.
func (o *Orchestrator) DragEnter() { o.dragging = true }

// DragLeave returns to idle without processing.
func (o *Orchestrator) DragLeave() { o.dragging = false }

// IsDragging reports whether a drag is hovering the drop target.
func (o *Orchestrator) IsDragging() bool { return o.dragging }

// IsProcessing reports whether a batch is currently being processed.
func (o *Orchestrator) IsProcessing() bool { return o.processing }

// Recent returns a copy of the retained activity log, newest first.
func (o *Orchestrator) Recent() []ProcessedEmail {
	out := make([]ProcessedEmail, len(o.recent))
	copy(out, o.recent)
	return out
}

// ProcessFiles ingests a batch. Entries that are not .eml files (by
// name suffix or declared type message/rfc822) are filtered out; the
// survivors are processed sequentially. Results are returned in drop
// order and prepended to the activity log newest first.
func (o *Orchestrator) ProcessFiles(ctx context.Context, files []InboundFile) []ProcessedEmail {
	o.dragging = false
	o.processing = true
	defer func() { o.processing = false }()

	var batch []ProcessedEmail
	for _, f := range files {
		if !isEmailFile(f) {
			o.logger.Debug("skipping non-email file", "name", f.Name)
			continue
		}
		entry := o.processFile(ctx, f)
		batch = append(batch, entry)

		o.recent = append([]ProcessedEmail{entry}, o.recent...)
		if len(o.recent) > maxRecentEntries {
			o.recent = o.recent[:maxRecentEntries]
		}
	}
	return batch
}

func (o *Orchestrator) processFile(ctx context.Context, f InboundFile) ProcessedEmail {
	entry := ProcessedEmail{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}

	raw, err := f.Open(ctx)
	if err != nil {
		return o.fail(entry, f.Name, fmt.Errorf("failed to read file: %w", err))
	}
	if len(raw) == 0 {
		return o.fail(entry, f.Name, errors.New("file is empty"))
	}
	if !utf8.Valid(raw) {
		return o.fail(entry, f.Name, errors.New("file is not valid UTF-8"))
	}

	email := mime.Parse(string(raw))
	entry.Email = email
	entry.Workflow = classify.Classify(email.Subject, email.Body)

	o.hooks.ShowPreview(email)

	customerID := o.matchCustomer(ctx, email.From)

	itemID, err := o.createRecord(ctx, entry.Workflow, email, customerID)
	if err != nil {
		return o.fail(entry, f.Name, fmt.Errorf("failed to create %s: %w", entry.Workflow, err))
	}
	entry.WorkflowItemID = itemID

	if o.userID != "" {
		o.recordInteraction(ctx, email, customerID)
	}

	entry.Status = StatusSuccess
	entry.Message = fmt.Sprintf("processed as %s", entry.Workflow)
	o.logger.Info("email processed",
		"name", f.Name,
		"workflow", entry.Workflow,
		"item_id", itemID,
	)
	return entry
}

// createRecord invokes the hook matching the workflow. The quote
// extraction engine runs only on the order path.
func (o *Orchestrator) createRecord(ctx context.Context, wf models.Workflow, email *mime.ParsedEmail, customerID string) (string, error) {
	switch wf {
	case models.WorkflowTask:
		return o.hooks.CreateTask(ctx, TaskDraft{
			Title:       email.Subject,
			Description: email.Body,
			DueDate:     time.Now().AddDate(0, 0, o.dueDays),
			Priority:    "medium",
		})
	case models.WorkflowOrder:
		extracted := o.extractor.Extract(email.Body, email.Subject)
		return o.hooks.CreateOrder(ctx, OrderDraft{
			Email:      email,
			CustomerID: customerID,
			Quote:      &extracted,
		})
	default:
		return o.hooks.CreateNotification(ctx, NotificationDraft{
			Title:   email.Subject,
			Message: email.Body,
		})
	}
}

// matchCustomer resolves the sender to a known customer. A miss is not
// an error; it surfaces as an empty id requiring human selection.
func (o *Orchestrator) matchCustomer(ctx context.Context, from string) string {
	if o.resolver == nil || from == "" {
		return ""
	}
	id, err := o.resolver.FindByEmail(ctx, from)
	if errors.Is(err, customer.ErrNoMatch) {
		o.logger.Debug("no automatic customer match", "from", from)
		return ""
	}
	if err != nil {
		o.logger.Warn("customer lookup failed", "from", from, "error", err)
		return ""
	}
	return id
}

// recordInteraction logs a generic "email received" interaction. A
// failure here does not fail the file; the workflow record was already
// created.
func (o *Orchestrator) recordInteraction(ctx context.Context, email *mime.ParsedEmail, customerID string) {
	_, err := o.hooks.CreateInteraction(ctx, InteractionDraft{
		UserID:     o.userID,
		Kind:       "email_received",
		CustomerID: customerID,
		EmailFrom:  email.From,
		Subject:    email.Subject,
	})
	if err != nil {
		o.logger.Warn("failed to record interaction", "error", err)
	}
}

func (o *Orchestrator) fail(entry ProcessedEmail, name string, err error) ProcessedEmail {
	o.logger.Error("failed to process email", "name", name, "error", err)
	entry.Status = StatusError
	entry.Message = err.Error()
	if entry.Workflow == "" {
		entry.Workflow = models.WorkflowNotification
	}
	return entry
}

// isEmailFile filters the batch to .eml files and message/rfc822 entries.
func isEmailFile(f InboundFile) bool {
	return strings.HasSuffix(strings.ToLower(f.Name), ".eml") ||
		f.ContentType == "message/rfc822"
}
