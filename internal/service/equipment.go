package service

import (
	"context"
	"strings"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

// EquipmentInput holds the fields of a new equipment record. A zero quantity
// is stored as 1.
type EquipmentInput struct {
	Name         string                  `json:"name" validate:"required"`
	SerialNumber string                  `json:"serial_number"`
	Category     model.EquipmentCategory `json:"category" validate:"required,enum"`
	Brand        string                  `json:"brand"`
	Quantity     int                     `json:"quantity" validate:"min=0"`
	Description  string                  `json:"description"`
	Status       model.EquipmentStatus   `json:"status" validate:"omitempty,enum"`
}

func (in *EquipmentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Description = strings.TrimSpace(in.Description)
}

// EquipmentUpdate holds the fields to change. Nil fields are left as they are;
// an empty serial number clears it.
type EquipmentUpdate struct {
	Name         *string                  `json:"name"`
	SerialNumber *string                  `json:"serial_number"`
	Category     *model.EquipmentCategory `json:"category"`
	Brand        *string                  `json:"brand"`
	Quantity     *int                     `json:"quantity"`
	Description  *string                  `json:"description"`
	Status       *model.EquipmentStatus   `json:"status"`
}

// EquipmentQuery filters ListEquipment.
type EquipmentQuery struct {
	Category model.EquipmentCategory `json:"category" validate:"omitempty,enum"`
	Status   model.EquipmentStatus   `json:"status" validate:"omitempty,enum"`
}

// CreateEquipment validates in and stores a new equipment record.
func (s *Service) CreateEquipment(ctx context.Context, in EquipmentInput) (*model.Equipment, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.EquipmentStatusAvailable
	}

	now := s.now()
	e := &model.Equipment{
		ID:           s.newID(),
		Name:         in.Name,
		SerialNumber: optional(in.SerialNumber),
		Category:     in.Category,
		Brand:        in.Brand,
		Quantity:     quantity(in.Quantity),
		Description:  in.Description,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateEquipment(ctx, e); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict(err, "serial number %s already exists", in.SerialNumber)
		}
		return nil, storeError("creating equipment", err)
	}
	s.invalidateStats(ctx)
	return e, nil
}

// GetEquipment returns an equipment record.
func (s *Service) GetEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	e, err := s.store.GetEquipment(ctx, id)
	if err != nil {
		return nil, storeError("getting equipment", err)
	}
	if e == nil {
		return nil, apperrors.NotFound("equipment %s not found", id)
	}
	return e, nil
}

// ListEquipment returns equipment newest first.
func (s *Service) ListEquipment(ctx context.Context, q EquipmentQuery) ([]model.Equipment, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}
	items, err := s.store.ListEquipment(ctx, store.EquipmentFilter{Category: q.Category, Status: q.Status})
	if err != nil {
		return nil, storeError("listing equipment", err)
	}
	return items, nil
}

// UpdateEquipment applies the non-nil fields of up. It is the only operation
// that changes equipment status; ledger entries never do.
func (s *Service) UpdateEquipment(ctx context.Context, id string, up EquipmentUpdate) (*model.Equipment, error) {
	e, err := s.store.GetEquipment(ctx, id)
	if err != nil {
		return nil, storeError("getting equipment", err)
	}
	if e == nil {
		return nil, apperrors.NotFound("equipment %s not found", id)
	}

	in := EquipmentInput{
		Name:        e.Name,
		Category:    e.Category,
		Brand:       e.Brand,
		Quantity:    e.Quantity,
		Description: e.Description,
		Status:      e.Status,
	}
	if e.SerialNumber != nil {
		in.SerialNumber = *e.SerialNumber
	}
	setString(&in.Name, up.Name)
	setString(&in.SerialNumber, up.SerialNumber)
	setString(&in.Brand, up.Brand)
	setString(&in.Description, up.Description)
	if up.Category != nil {
		in.Category = *up.Category
	}
	if up.Quantity != nil {
		in.Quantity = *up.Quantity
	}
	if up.Status != nil {
		in.Status = *up.Status
	}

	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = model.EquipmentStatusAvailable
	}

	e.Name = in.Name
	e.SerialNumber = optional(in.SerialNumber)
	e.Category = in.Category
	e.Brand = in.Brand
	e.Quantity = quantity(in.Quantity)
	e.Description = in.Description
	e.Status = in.Status
	e.UpdatedAt = s.now()

	if err := s.store.UpdateEquipment(ctx, e); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict(err, "serial number %s already exists", in.SerialNumber)
		}
		return nil, storeError("updating equipment", err)
	}
	s.invalidateStats(ctx)
	return e, nil
}

func quantity(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
