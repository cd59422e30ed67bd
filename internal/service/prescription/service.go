package prescription

import (
	"context"
	"time"

	"github.com/medrec/records-api/internal/model"
	"github.com/medrec/records-api/internal/repository"
	apperrors "github.com/medrec/records-api/pkg/errors"
)

type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

// Create persists a new unfulfilled prescription dated now. The patient uid
// and doctor name are taken as-is; neither is checked against the users
// collection.
func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		UID:       req.UID,
		Type:      req.Type,
		Details:   req.Details,
		Doctor:    req.Doctor,
		Date:      time.Now().UTC(),
		Fulfilled: false,
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// List returns prescriptions matching the filter, oldest first. An empty
// result is a success, not an error.
func (s *Service) List(ctx context.Context, filter model.PrescriptionFilter) ([]*model.Prescription, error) {
	return s.repo.List(ctx, filter)
}

// MarkFulfilled flips fulfilled to true and returns the updated record.
// It is idempotent: re-marking a fulfilled prescription succeeds unchanged.
func (s *Service) MarkFulfilled(ctx context.Context, id string) (*model.Prescription, error) {
	if id == "" {
		return nil, apperrors.Validation("prescription id is required")
	}
	return s.repo.MarkFulfilled(ctx, id)
}

func validateCreate(req *model.CreatePrescriptionRequest) error {
	switch {
	case req.UID == "":
		return apperrors.Validation("uid is required")
	case req.Details == "":
		return apperrors.Validation("details is required")
	case req.Doctor == "":
		return apperrors.Validation("doctor is required")
	case !model.ValidPrescriptionType(req.Type):
		return apperrors.Validation("type must be one of diabetes, general")
	}
	return nil
}
