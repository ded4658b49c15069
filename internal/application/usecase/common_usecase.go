package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated is returned when an operation that requires a
	// signed-in user is called with an empty ("anonymous") user id.
	ErrUnauthenticated = errors.New("usecase: user is not authenticated")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IDGenerator mints identifiers for new records.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// Per-call deadlines. Reads are safe to retry upstream and get a short
// bound; the checkout write sequence gets a single wider deadline and is
// never blindly retried.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
)

func withReadTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, readTimeout)
}

func withWriteTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, writeTimeout)
}

func requireUserID(userID string) (string, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return "", ErrUnauthenticated
	}
	return uid, nil
}
