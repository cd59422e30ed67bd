package repository

import (
	"context"

	"github.com/medrec/records-api/internal/model"
)

// UserRepository persists user credential records. Implementations must
// enforce UID uniqueness at the store level: of two concurrent Creates with
// the same UID exactly one succeeds and the other fails with a DuplicateKey
// error, never a partial record.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUID(ctx context.Context, uid string) (*model.User, error)
}

// PrescriptionRepository persists prescription records.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	List(ctx context.Context, filter model.PrescriptionFilter) ([]*model.Prescription, error)
	MarkFulfilled(ctx context.Context, id string) (*model.Prescription, error)
}
