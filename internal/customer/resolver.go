package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwillems/mailintake/internal/storage"
	"github.com/jwillems/mailintake/pkg/models"
)

// mappingsKey is the well-known storage key holding the full mapping
// collection as a JSON array.
const mappingsKey = "customer_email_mappings"

// ErrNoMatch is returned when no mapping exists for an email address.
// It signals "no automatic match", requiring explicit human selection,
// and is never treated as a failure by callers.
var ErrNoMatch = errors.New("no customer match for email")

// Resolver maintains the persisted email-to-customer mapping. Matching
// is exact on the lowercased address; every mutation rewrites the whole
// collection.
type Resolver struct {
	store storage.Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// FindByEmail returns the customer id mapped to the address, or
// ErrNoMatch. The lookup is case-insensitive.
func (r *Resolver) FindByEmail(ctx context.Context, email string) (string, error) {
	mappings, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, m := range mappings {
		if m.Email == email {
			return m.CustomerID, nil
		}
	}
	return "", ErrNoMatch
}

// Save upserts a mapping, replacing any existing mapping for the same
// lowercased email. Last write wins; no history is kept.
func (r *Resolver) Save(ctx context.Context, email, customerID string) error {
	mappings, err := r.load(ctx)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	kept := mappings[:0]
	for _, m := range mappings {
		if m.Email != email {
			kept = append(kept, m)
		}
	}
	kept = append(kept, models.EmailCustomerMapping{
		Email:      email,
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	})

	return r.persist(ctx, kept)
}

// Remove deletes the mapping for the address if present.
func (r *Resolver) Remove(ctx context.Context, email string) error {
	mappings, err := r.load(ctx)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	kept := mappings[:0]
	for _, m := range mappings {
		if m.Email != email {
			kept = append(kept, m)
		}
	}

	return r.persist(ctx, kept)
}

// ListForCustomer returns all emails mapped to a customer.
func (r *Resolver) ListForCustomer(ctx context.Context, customerID string) ([]string, error) {
	mappings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var emails []string
	for _, m := range mappings {
		if m.CustomerID == customerID {
			emails = append(emails, m.Email)
		}
	}
	return emails, nil
}

func (r *Resolver) load(ctx context.Context) ([]models.EmailCustomerMapping, error) {
	var mappings []models.EmailCustomerMapping
	err := r.store.Get(ctx, mappingsKey, &mappings)
	if errors.Is(err, storage.ErrNoValue) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer mappings: %w", err)
	}
	return mappings, nil
}

func (r *Resolver) persist(ctx context.Context, mappings []models.EmailCustomerMapping) error {
	if mappings == nil {
		mappings = []models.EmailCustomerMapping{}
	}
	if err := r.store.Set(ctx, mappingsKey, mappings); err != nil {
		return fmt.Errorf("failed to save customer mappings: %w", err)
	}
	return nil
}
