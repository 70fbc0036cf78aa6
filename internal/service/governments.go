package service

import (
	"context"
	"strings"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

// receivedTransactionsLimit caps the incoming transactions shown with a government.
const receivedTransactionsLimit = 10

// GovernmentInput holds the fields of a new government.
type GovernmentInput struct {
	Name          string `json:"name" validate:"required"`
	CountryCode   string `json:"country_code" validate:"required"`
	ContactEmail  string `json:"contact_email" validate:"required,email"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

func (in *GovernmentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CountryCode = strings.ToUpper(strings.TrimSpace(in.CountryCode))
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
}

// GovernmentUpdate holds the fields to change. Nil fields are left as they are.
type GovernmentUpdate struct {
	Name          *string `json:"name"`
	CountryCode   *string `json:"country_code"`
	ContactEmail  *string `json:"contact_email"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// CreateGovernment validates in and stores a new government.
func (s *Service) CreateGovernment(ctx context.Context, in GovernmentInput) (*model.Government, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	g := &model.Government{
		ID:            s.newID(),
		Name:          in.Name,
		CountryCode:   in.CountryCode,
		ContactEmail:  in.ContactEmail,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateGovernment(ctx, g); err != nil {
		return nil, storeError("creating government", err)
	}
	s.invalidateStats(ctx)
	return g, nil
}

// ListGovernments returns every government ordered by name.
func (s *Service) ListGovernments(ctx context.Context) ([]model.Government, error) {
	governments, err := s.store.ListGovernments(ctx)
	if err != nil {
		return nil, storeError("listing governments", err)
	}
	return governments, nil
}

// GetGovernment returns a government with the weapons it owns and its most
// recent incoming transactions.
func (s *Service) GetGovernment(ctx context.Context, id string) (*model.GovernmentDetail, error) {
	g, err := s.store.GetGovernment(ctx, id)
	if err != nil {
		return nil, storeError("getting government", err)
	}
	if g == nil {
		return nil, apperrors.NotFound("government %s not found", id)
	}

	weapons, err := s.store.ListWeapons(ctx, store.WeaponFilter{OwnerID: id})
	if err != nil {
		return nil, storeError("listing government weapons", err)
	}
	received, err := s.store.ListTransactions(ctx, store.TransactionFilter{ToID: id, Limit: receivedTransactionsLimit})
	if err != nil {
		return nil, storeError("listing government transactions", err)
	}

	return &model.GovernmentDetail{Government: *g, Weapons: weapons, ReceivedTransactions: received}, nil
}

// UpdateGovernment applies the non-nil fields of up. Required fields cannot be
// blanked.
func (s *Service) UpdateGovernment(ctx context.Context, id string, up GovernmentUpdate) (*model.Government, error) {
	g, err := s.store.GetGovernment(ctx, id)
	if err != nil {
		return nil, storeError("getting government", err)
	}
	if g == nil {
		return nil, apperrors.NotFound("government %s not found", id)
	}

	in := GovernmentInput{
		Name:          g.Name,
		CountryCode:   g.CountryCode,
		ContactEmail:  g.ContactEmail,
		ContactPerson: g.ContactPerson,
		Phone:         g.Phone,
		Address:       g.Address,
	}
	setString(&in.Name, up.Name)
	setString(&in.CountryCode, up.CountryCode)
	setString(&in.ContactEmail, up.ContactEmail)
	setString(&in.ContactPerson, up.ContactPerson)
	setString(&in.Phone, up.Phone)
	setString(&in.Address, up.Address)

	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	g.Name = in.Name
	g.CountryCode = in.CountryCode
	g.ContactEmail = in.ContactEmail
	g.ContactPerson = in.ContactPerson
	g.Phone = in.Phone
	g.Address = in.Address
	g.UpdatedAt = s.now()

	if err := s.store.UpdateGovernment(ctx, g); err != nil {
		return nil, storeError("updating government", err)
	}
	s.invalidateStats(ctx)
	return g, nil
}

// DeleteGovernment removes a government. Weapons it owned become unowned and
// the ledger keeps its entries without the government reference.
func (s *Service) DeleteGovernment(ctx context.Context, id string) error {
	if err := s.store.DeleteGovernment(ctx, id); err != nil {
		return storeError("deleting government", err)
	}
	s.invalidateStats(ctx)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
