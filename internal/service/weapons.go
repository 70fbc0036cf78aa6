package service

import (
	"context"
	"strings"
	"time"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

// WeaponTypeInput holds the fields of a new catalog entry.
type WeaponTypeInput struct {
	Name        string               `json:"name" validate:"required"`
	Category    model.WeaponCategory `json:"category" validate:"required,enum"`
	Brand       string               `json:"brand" validate:"required"`
	Description string               `json:"description"`
}

// WeaponTypeQuery filters ListWeaponTypes.
type WeaponTypeQuery struct {
	Category model.WeaponCategory `json:"category" validate:"omitempty,enum"`
	Brand    string               `json:"brand"`
}

// WeaponInput holds the fields of a new weapon.
type WeaponInput struct {
	SerialNumber    string             `json:"serial_number" validate:"required"`
	WeaponTypeID    string             `json:"weapon_type_id" validate:"required"`
	Status          model.WeaponStatus `json:"status" validate:"omitempty,enum"`
	CurrentOwnerID  string             `json:"current_owner_id"`
	AcquisitionDate *time.Time         `json:"acquisition_date"`
	Notes           string             `json:"notes"`
}

// WeaponQuery filters ListWeapons.
type WeaponQuery struct {
	Status   model.WeaponStatus   `json:"status" validate:"omitempty,enum"`
	OwnerID  string               `json:"owner_id"`
	Category model.WeaponCategory `json:"category" validate:"omitempty,enum"`
	Query    string               `json:"q"`
}

// CreateWeaponType validates in and stores a new weapon type.
func (s *Service) CreateWeaponType(ctx context.Context, in WeaponTypeInput) (*model.WeaponType, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	wt := &model.WeaponType{
		ID:          s.newID(),
		Name:        in.Name,
		Category:    in.Category,
		Brand:       in.Brand,
		Description: in.Description,
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateWeaponType(ctx, wt); err != nil {
		return nil, storeError("creating weapon type", err)
	}
	return wt, nil
}

// ListWeaponTypes returns the catalog ordered by category and name.
func (s *Service) ListWeaponTypes(ctx context.Context, q WeaponTypeQuery) ([]model.WeaponType, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}
	types, err := s.store.ListWeaponTypes(ctx, store.WeaponTypeFilter{
		Category: q.Category,
		Brand:    strings.TrimSpace(q.Brand),
	})
	if err != nil {
		return nil, storeError("listing weapon types", err)
	}
	return types, nil
}

// CreateWeapon validates in and registers a new weapon. The serial number must
// be unique and the weapon type and owner must exist.
func (s *Service) CreateWeapon(ctx context.Context, in WeaponInput) (*model.Weapon, error) {
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	in.WeaponTypeID = strings.TrimSpace(in.WeaponTypeID)
	in.CurrentOwnerID = strings.TrimSpace(in.CurrentOwnerID)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	wt, err := s.store.GetWeaponType(ctx, in.WeaponTypeID)
	if err != nil {
		return nil, storeError("getting weapon type", err)
	}
	if wt == nil {
		return nil, apperrors.NotFound("weapon type %s not found", in.WeaponTypeID)
	}
	if in.CurrentOwnerID != "" {
		owner, err := s.store.GetGovernment(ctx, in.CurrentOwnerID)
		if err != nil {
			return nil, storeError("getting government", err)
		}
		if owner == nil {
			return nil, apperrors.NotFound("government %s not found", in.CurrentOwnerID)
		}
	}

	status := in.Status
	if status == "" {
		status = model.WeaponStatusAvailable
	}
	var acquired *time.Time
	if in.AcquisitionDate != nil {
		t := in.AcquisitionDate.UTC()
		acquired = &t
	}

	now := s.now()
	w := &model.Weapon{
		ID:              s.newID(),
		SerialNumber:    in.SerialNumber,
		WeaponTypeID:    in.WeaponTypeID,
		Status:          status,
		CurrentOwnerID:  optional(in.CurrentOwnerID),
		AcquisitionDate: acquired,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateWeapon(ctx, w); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict(err, "serial number %s already exists", in.SerialNumber)
		}
		return nil, storeError("creating weapon", err)
	}
	s.invalidateStats(ctx)

	created, err := s.store.GetWeapon(ctx, w.ID)
	if err != nil || created == nil {
		// The insert committed; fall back to the unjoined record.
		return w, nil
	}
	return created, nil
}

// GetWeapon returns a weapon with its ledger history, newest first.
func (s *Service) GetWeapon(ctx context.Context, id string) (*model.WeaponDetail, error) {
	w, err := s.store.GetWeapon(ctx, id)
	if err != nil {
		return nil, storeError("getting weapon", err)
	}
	if w == nil {
		return nil, apperrors.NotFound("weapon %s not found", id)
	}
	history, err := s.store.ListTransactions(ctx, store.TransactionFilter{WeaponID: id})
	if err != nil {
		return nil, storeError("listing weapon history", err)
	}
	return &model.WeaponDetail{Weapon: *w, History: history}, nil
}

// ListWeapons returns weapons newest first.
func (s *Service) ListWeapons(ctx context.Context, q WeaponQuery) ([]model.Weapon, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}
	weapons, err := s.store.ListWeapons(ctx, store.WeaponFilter{
		Status:   q.Status,
		OwnerID:  strings.TrimSpace(q.OwnerID),
		Category: q.Category,
		Query:    strings.TrimSpace(q.Query),
	})
	if err != nil {
		return nil, storeError("listing weapons", err)
	}
	return weapons, nil
}
