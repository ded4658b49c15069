// internal/adapters/out/firestore/checkout_intent_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"atelier/internal/domain/checkout"
)

// CheckoutIntentRepositoryFS implements checkout.IntentRepository.
//
// Collection design:
// - collection: checkout_intents
// - docId: order id (the attempt's idempotency key)
type CheckoutIntentRepositoryFS struct {
	Client *firestore.Client
}

func NewCheckoutIntentRepositoryFS(client *firestore.Client) *CheckoutIntentRepositoryFS {
	return &CheckoutIntentRepositoryFS{Client: client}
}

func (r *CheckoutIntentRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("checkout_intents")
}

func (r *CheckoutIntentRepositoryFS) Create(ctx context.Context, in checkout.Intent) error {
	if r.Client == nil {
		return errors.New("checkout_intent_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		return checkout.ErrInvalidIntent
	}

	if _, err := r.col().Doc(id).Create(ctx, intentToDoc(in)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return checkout.ErrIntentExists
		}
		return err
	}
	return nil
}

func (r *CheckoutIntentRepositoryFS) GetByID(ctx context.Context, id string) (checkout.Intent, error) {
	if r.Client == nil {
		return checkout.Intent{}, errors.New("checkout_intent_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return checkout.Intent{}, checkout.ErrIntentNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return checkout.Intent{}, checkout.ErrIntentNotFound
		}
		return checkout.Intent{}, err
	}

	return docToIntent(snap)
}

func (r *CheckoutIntentRepositoryFS) Save(ctx context.Context, in checkout.Intent) error {
	if r.Client == nil {
		return errors.New("checkout_intent_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		return checkout.ErrInvalidIntent
	}

	_, err := r.col().Doc(id).Set(ctx, intentToDoc(in))
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type intentDoc struct {
	UserID    string    `firestore:"userId"`
	Stage     string    `firestore:"stage"`
	Failed    bool      `firestore:"failed"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func intentToDoc(in checkout.Intent) intentDoc {
	return intentDoc{
		UserID:    in.UserID,
		Stage:     string(in.Stage),
		Failed:    in.Failed,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

func docToIntent(snap *firestore.DocumentSnapshot) (checkout.Intent, error) {
	var d intentDoc
	if err := snap.DataTo(&d); err != nil {
		return checkout.Intent{}, err
	}
	return checkout.Intent{
		ID:        snap.Ref.ID,
		UserID:    d.UserID,
		Stage:     checkout.Stage(d.Stage),
		Failed:    d.Failed,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
