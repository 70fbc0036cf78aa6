package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/erazemk/arsenal/internal/model"
)

// TransactionFilter narrows ListTransactions. Zero values match everything and
// a zero Limit returns every row.
type TransactionFilter struct {
	Type     model.TransactionType
	WeaponID string
	// GovernmentID matches the sender or the receiver.
	GovernmentID string
	ToID         string
	Limit        uint64
}

func transactionSelect() sq.SelectBuilder {
	return sq.Select(
		"t.id", "t.type", "t.weapon_id", "t.equipment_id", "t.from_id", "t.to_id",
		"t.contract_number", "t.value", "t.currency", "t.details", "t.notes",
		"t.timestamp", "t.created_at",
		"COALESCE(w.serial_number, '')", "COALESCE(wt.name, '')", "COALESCE(wt.category, '')",
		"COALESCE(e.name, '')", "COALESCE(gf.name, '')", "COALESCE(gt.name, '')",
	).
		From("transactions t").
		LeftJoin("weapons w ON w.id = t.weapon_id").
		LeftJoin("weapon_types wt ON wt.id = w.weapon_type_id").
		LeftJoin("equipment e ON e.id = t.equipment_id").
		LeftJoin("governments gf ON gf.id = t.from_id").
		LeftJoin("governments gt ON gt.id = t.to_id")
}

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var weaponID, equipmentID, fromID, toID, contract, details, notes sql.NullString
	var value decimal.NullDecimal
	err := scan(&t.ID, &t.Type, &weaponID, &equipmentID, &fromID, &toID,
		&contract, &value, &t.Currency, &details, &notes,
		&t.Timestamp, &t.CreatedAt,
		&t.WeaponSerial, &t.WeaponTypeName, &t.WeaponCategory,
		&t.EquipmentName, &t.FromName, &t.ToName)
	if err != nil {
		return t, err
	}
	switch {
	case weaponID.Valid:
		t.Asset = model.WeaponRef(weaponID.String)
	case equipmentID.Valid:
		t.Asset = model.EquipmentRef(equipmentID.String)
	}
	t.FromID = ptrFromNull(fromID)
	t.ToID = ptrFromNull(toID)
	t.ContractNumber = contract.String
	t.Details = details.String
	t.Notes = notes.String
	if value.Valid {
		v := value.Decimal
		t.Value = &v
	}
	return t, nil
}

// InsertTransaction appends t to the ledger.
func (q queries) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	var weaponID, equipmentID, value any
	if id, ok := t.WeaponID(); ok {
		weaponID = id
	}
	if id, ok := t.EquipmentID(); ok {
		equipmentID = id
	}
	if t.Value != nil {
		value = t.Value.String()
	}
	currency := t.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	_, err := q.exec(ctx, sq.Insert("transactions").
		Columns("id", "type", "weapon_id", "equipment_id", "from_id", "to_id",
			"contract_number", "value", "currency", "details", "notes", "timestamp", "created_at").
		Values(t.ID, string(t.Type), weaponID, equipmentID, nullStringPtr(t.FromID), nullStringPtr(t.ToID),
			nullString(t.ContractNumber), value, currency, nullString(t.Details), nullString(t.Notes),
			t.Timestamp, t.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", classify(err, "transaction"))
	}
	return nil
}

// GetTransaction returns a ledger entry by ID, or nil if it does not exist.
func (q queries) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	query, args, err := transactionSelect().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	t, err := scanTransaction(q.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return &t, nil
}

// ListTransactions returns ledger entries newest first.
func (q queries) ListTransactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	b := transactionSelect().OrderBy("t.timestamp DESC", "t.rowid DESC")

	if f.Type != "" {
		b = b.Where(sq.Eq{"t.type": string(f.Type)})
	}
	if f.WeaponID != "" {
		b = b.Where(sq.Eq{"t.weapon_id": f.WeaponID})
	}
	if f.GovernmentID != "" {
		b = b.Where(sq.Or{sq.Eq{"t.from_id": f.GovernmentID}, sq.Eq{"t.to_id": f.GovernmentID}})
	}
	if f.ToID != "" {
		b = b.Where(sq.Eq{"t.to_id": f.ToID})
	}
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}

	rows, err := q.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
