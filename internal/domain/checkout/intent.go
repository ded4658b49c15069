// internal/domain/checkout/intent.go
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidIntent  = errors.New("checkout: invalid intent")
	ErrIntentNotFound = errors.New("checkout: intent not found")
	ErrIntentExists   = errors.New("checkout: intent already exists")
)

// Intent is the persisted saga record for a step-wise checkout. Its id is
// the order id (= idempotency key), so a blind resubmission of the same
// attempt collides here instead of duplicating an order. Stage records the
// last successfully completed write; a reconciliation job can resume or
// compensate from it.
type Intent struct {
	ID     string // = order id
	UserID string

	Stage  Stage
	Failed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewIntent(orderID, userID string, now time.Time) (Intent, error) {
	in := Intent{
		ID:        strings.TrimSpace(orderID),
		UserID:    strings.TrimSpace(userID),
		Stage:     StageValidating,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if in.ID == "" || in.UserID == "" {
		return Intent{}, ErrInvalidIntent
	}
	return in, nil
}

// AdvanceTo records that all writes up to and including stage completed.
func (in *Intent) AdvanceTo(stage Stage, now time.Time) {
	in.Stage = stage
	in.UpdatedAt = now.UTC()
}

// MarkFailed freezes the intent at the stage that was reached when the
// failure occurred.
func (in *Intent) MarkFailed(now time.Time) {
	in.Failed = true
	in.UpdatedAt = now.UTC()
}

// IntentRepository persists checkout intents.
type IntentRepository interface {
	// Create fails with ErrIntentExists when the id is already taken.
	Create(ctx context.Context, in Intent) error
	GetByID(ctx context.Context, id string) (Intent, error)
	Save(ctx context.Context, in Intent) error
}
