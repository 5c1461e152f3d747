package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/medicine-service/internal/domain"
	"github.com/spec-kit/medicine-service/internal/events"
	"github.com/spec-kit/medicine-service/internal/repository"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// MedicineService coordinates inventory workflows.
type MedicineService struct {
	medicines  repository.MedicineRepository
	dispatcher events.Dispatcher
}

// NewMedicineService builds the service.
func NewMedicineService(medicines repository.MedicineRepository, dispatcher events.Dispatcher) *MedicineService {
	return &MedicineService{medicines: medicines, dispatcher: dispatcher}
}

// MedicineInput carries create payloads.
type MedicineInput struct {
	Name         string
	Description  string
	Category     string
	Manufacturer string
	Price        float64
	Stock        int
	ExpiryDate   *time.Time
}

// MedicineUpdateInput carries partial updates; nil fields are left untouched.
type MedicineUpdateInput struct {
	Name         *string
	Description  *string
	Category     *string
	Manufacturer *string
	Price        *float64
	Stock        *int
	ExpiryDate   *time.Time
}

// Create stores a new inventory record.
func (s *MedicineService) Create(ctx context.Context, actor *domain.User, input MedicineInput) (*domain.Medicine, error) {
	var fieldErrors []string
	if input.Name == "" {
		fieldErrors = append(fieldErrors, "name: required")
	}
	if input.Price < 0 {
		fieldErrors = append(fieldErrors, "price: must not be negative")
	}
	if input.Stock < 0 {
		fieldErrors = append(fieldErrors, "stock: must not be negative")
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors...)
	}

	med := &domain.Medicine{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Manufacturer: input.Manufacturer,
		Price:        input.Price,
		Stock:        input.Stock,
		ExpiryDate:   input.ExpiryDate,
	}
	if err := s.medicines.Create(ctx, med); err != nil {
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventMedicineCreated, events.MedicineChangedPayload{
		MedicineID: med.ID,
		Name:       med.Name,
		ActorID:    actor.ID,
	}))
	return med, nil
}

// Get fetches one record by id.
func (s *MedicineService) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	med, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("medicine")
		}
		return nil, apperrors.MapError(err)
	}
	return med, nil
}

// List returns records matching the filter.
func (s *MedicineService) List(ctx context.Context, filter repository.MedicineFilter) ([]domain.Medicine, error) {
	meds, err := s.medicines.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return meds, nil
}

// Update applies a partial update.
func (s *MedicineService) Update(ctx context.Context, actor *domain.User, id string, input MedicineUpdateInput) (*domain.Medicine, error) {
	med, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("medicine")
		}
		return nil, apperrors.MapError(err)
	}

	var fieldErrors []string
	if input.Name != nil {
		if *input.Name == "" {
			fieldErrors = append(fieldErrors, "name: required")
		} else {
			med.Name = *input.Name
		}
	}
	if input.Description != nil {
		med.Description = *input.Description
	}
	if input.Category != nil {
		med.Category = *input.Category
	}
	if input.Manufacturer != nil {
		med.Manufacturer = *input.Manufacturer
	}
	if input.Price != nil {
		if *input.Price < 0 {
			fieldErrors = append(fieldErrors, "price: must not be negative")
		} else {
			med.Price = *input.Price
		}
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			fieldErrors = append(fieldErrors, "stock: must not be negative")
		} else {
			med.Stock = *input.Stock
		}
	}
	if input.ExpiryDate != nil {
		med.ExpiryDate = input.ExpiryDate
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors...)
	}

	if err := s.medicines.Update(ctx, med); err != nil {
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventMedicineUpdated, events.MedicineChangedPayload{
		MedicineID: med.ID,
		Name:       med.Name,
		ActorID:    actor.ID,
	}))
	return med, nil
}

// Delete removes a record.
func (s *MedicineService) Delete(ctx context.Context, actor *domain.User, id string) error {
	med, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("medicine")
		}
		return apperrors.MapError(err)
	}

	if err := s.medicines.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("medicine")
		}
		return apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventMedicineDeleted, events.MedicineChangedPayload{
		MedicineID: med.ID,
		Name:       med.Name,
		ActorID:    actor.ID,
	}))
	return nil
}
