package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/report"
	"github.com/erazemk/arsenal/internal/store"
)

// Transaction list limits.
const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 500
)

// TransactionInput holds the fields of a new ledger entry. At most one of
// WeaponID and EquipmentID may be set.
type TransactionInput struct {
	Type           model.TransactionType `json:"type" validate:"required,enum"`
	WeaponID       string                `json:"weapon_id"`
	EquipmentID    string                `json:"equipment_id"`
	FromID         string                `json:"from_id"`
	ToID           string                `json:"to_id"`
	ContractNumber string                `json:"contract_number"`
	Value          *decimal.Decimal      `json:"value"`
	Currency       string                `json:"currency"`
	Details        string                `json:"details"`
	Notes          string                `json:"notes"`
	Timestamp      *time.Time            `json:"timestamp"`
}

// TransactionQuery filters ListTransactions and ExportTransactions.
type TransactionQuery struct {
	Type         model.TransactionType `json:"type" validate:"omitempty,enum"`
	WeaponID     string                `json:"weapon_id"`
	GovernmentID string                `json:"gov_id"`
	Limit        int                   `json:"limit" validate:"min=0"`
}

// CreateTransaction records a ledger entry. When the entry references a weapon,
// the weapon's status and owner move according to the transition table in the
// same atomic unit as the insert: either both are stored or neither is.
func (s *Service) CreateTransaction(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	tx, err := s.buildTransaction(in)
	if err != nil {
		s.metrics.LedgerFailure(apperrors.KindOf(err).String())
		return nil, err
	}

	var resulting model.WeaponStatus
	err = s.store.RunAtomic(ctx, func(st store.Tx) error {
		if err := s.checkParties(ctx, st, tx); err != nil {
			return err
		}
		if id, ok := tx.EquipmentID(); ok {
			e, err := st.GetEquipment(ctx, id)
			if err != nil {
				return err
			}
			if e == nil {
				return apperrors.NotFound("equipment %s not found", id)
			}
		}
		if id, ok := tx.WeaponID(); ok {
			w, err := s.applyTransition(ctx, st, id, tx)
			if err != nil {
				return err
			}
			resulting = w.Status
		}
		return st.InsertTransaction(ctx, tx)
	})
	if err != nil {
		err = storeError("recording transaction", err)
		s.metrics.LedgerFailure(apperrors.KindOf(err).String())
		s.log.Warn("transaction rejected",
			zap.String("type", string(tx.Type)),
			zap.String("asset_kind", string(tx.Asset.Kind)),
			zap.String("asset_id", tx.Asset.ID),
			zap.Error(err))
		return nil, err
	}

	s.metrics.LedgerEntry(string(tx.Type), string(resulting))
	s.log.Info("transaction recorded",
		zap.String("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("asset_kind", string(tx.Asset.Kind)),
		zap.String("asset_id", tx.Asset.ID),
		zap.String("weapon_status", string(resulting)))
	s.invalidateStats(ctx)

	recorded, err := s.store.GetTransaction(ctx, tx.ID)
	if err != nil || recorded == nil {
		s.log.Warn("reading back recorded transaction", zap.String("id", tx.ID), zap.Error(err))
		return tx, nil
	}
	return recorded, nil
}

// buildTransaction validates in and fills defaults.
func (s *Service) buildTransaction(in TransactionInput) (*model.Transaction, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	asset, err := model.NewAssetRef(strings.TrimSpace(in.WeaponID), strings.TrimSpace(in.EquipmentID))
	if err != nil {
		return nil, apperrors.ValidationFields(err.Error(), map[string]string{
			"weapon_id":    "cannot be combined with equipment_id",
			"equipment_id": "cannot be combined with weapon_id",
		})
	}
	if in.Value != nil && in.Value.IsNegative() {
		return nil, apperrors.ValidationFields("invalid fields: value", map[string]string{"value": "must not be negative"})
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = model.DefaultCurrency
	}

	now := s.now()
	timestamp := now
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		timestamp = in.Timestamp.UTC()
	}

	return &model.Transaction{
		ID:             s.newID(),
		Type:           in.Type,
		Asset:          asset,
		FromID:         optional(in.FromID),
		ToID:           optional(in.ToID),
		ContractNumber: strings.TrimSpace(in.ContractNumber),
		Value:          in.Value,
		Currency:       currency,
		Details:        strings.TrimSpace(in.Details),
		Notes:          strings.TrimSpace(in.Notes),
		Timestamp:      timestamp,
		CreatedAt:      now,
	}, nil
}

// checkParties verifies that the sender and receiver exist.
func (s *Service) checkParties(ctx context.Context, st store.Tx, tx *model.Transaction) error {
	for _, p := range []struct {
		role string
		id   *string
	}{{"sender", tx.FromID}, {"receiver", tx.ToID}} {
		if p.id == nil {
			continue
		}
		g, err := st.GetGovernment(ctx, *p.id)
		if err != nil {
			return err
		}
		if g == nil {
			return apperrors.NotFound("%s government %s not found", p.role, *p.id)
		}
	}
	return nil
}

// applyTransition moves the weapon into the state produced by tx.
func (s *Service) applyTransition(ctx context.Context, st store.Tx, weaponID string, tx *model.Transaction) (*model.Weapon, error) {
	w, err := st.GetWeapon(ctx, weaponID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperrors.NotFound("weapon %s not found", weaponID)
	}
	if err := s.policy.Check(w.Status, tx.Type); err != nil {
		return nil, apperrors.Conflict(err, "%v", err)
	}
	tr, err := model.TransitionFor(tx.Type)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	next := tr.Apply(*w, tx.ToID)
	next.UpdatedAt = s.now()
	if err := st.UpdateWeaponState(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// ListTransactions returns ledger entries newest first. The limit defaults to
// DefaultTransactionLimit and is capped at MaxTransactionLimit.
func (s *Service) ListTransactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}
	limit := q.Limit
	switch {
	case limit == 0:
		limit = DefaultTransactionLimit
	case limit > MaxTransactionLimit:
		limit = MaxTransactionLimit
	}

	txs, err := s.store.ListTransactions(ctx, transactionFilter(q, limit))
	if err != nil {
		return nil, storeError("listing transactions", err)
	}
	return txs, nil
}

// ExportTransactions writes the filtered ledger to w as an xlsx workbook. A
// zero limit exports every matching entry.
func (s *Service) ExportTransactions(ctx context.Context, w io.Writer, q TransactionQuery) error {
	if err := s.validate.Struct(q); err != nil {
		return err
	}
	txs, err := s.store.ListTransactions(ctx, transactionFilter(q, q.Limit))
	if err != nil {
		return storeError("listing transactions", err)
	}
	if err := report.WriteTransactions(w, txs); err != nil {
		return apperrors.Store("writing export", err)
	}
	return nil
}

func transactionFilter(q TransactionQuery, limit int) store.TransactionFilter {
	return store.TransactionFilter{
		Type:         q.Type,
		WeaponID:     strings.TrimSpace(q.WeaponID),
		GovernmentID: strings.TrimSpace(q.GovernmentID),
		Limit:        uint64(limit),
	}
}
