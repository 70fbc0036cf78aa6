package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/erazemk/arsenal/internal/model"
)

// Counts returns the number of rows in each entity table.
func (q queries) Counts(ctx context.Context) (model.Counts, error) {
	var c model.Counts
	err := q.queryRow(ctx,
		sq.Select(
			"(SELECT COUNT(*) FROM governments)",
			"(SELECT COUNT(*) FROM weapons)",
			"(SELECT COUNT(*) FROM equipment)",
			"(SELECT COUNT(*) FROM transactions)",
		),
		&c.Governments, &c.Weapons, &c.Equipment, &c.Transactions,
	)
	if err != nil {
		return c, fmt.Errorf("counting rows: %w", err)
	}
	return c, nil
}

// WeaponsByStatus returns the number of weapons in each status. Statuses with
// no weapons are absent.
func (q queries) WeaponsByStatus(ctx context.Context) (map[model.WeaponStatus]int, error) {
	rows, err := q.query(ctx, sq.Select("status", "COUNT(*)").From("weapons").GroupBy("status"))
	if err != nil {
		return nil, fmt.Errorf("grouping weapons: %w", err)
	}
	defer rows.Close()

	out := make(map[model.WeaponStatus]int)
	for rows.Next() {
		var status model.WeaponStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning weapon group: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// TransactionsByType returns the number of ledger entries of each type. Types
// with no entries are absent.
func (q queries) TransactionsByType(ctx context.Context) (map[model.TransactionType]int, error) {
	rows, err := q.query(ctx, sq.Select("type", "COUNT(*)").From("transactions").GroupBy("type"))
	if err != nil {
		return nil, fmt.Errorf("grouping transactions: %w", err)
	}
	defer rows.Close()

	out := make(map[model.TransactionType]int)
	for rows.Next() {
		var typ model.TransactionType
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scanning transaction group: %w", err)
		}
		out[typ] = n
	}
	return out, rows.Err()
}

// SumTransactionValues adds up the values of every entry of type t. Entries
// without a value count as zero. Values are summed as decimals to stay exact.
func (q queries) SumTransactionValues(ctx context.Context, t model.TransactionType) (decimal.Decimal, error) {
	rows, err := q.query(ctx, sq.Select("value").From("transactions").
		Where(sq.Eq{"type": string(t)}).
		Where(sq.NotEq{"value": nil}))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transaction values: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return decimal.Zero, fmt.Errorf("scanning transaction value: %w", err)
		}
		if !v.Valid {
			continue
		}
		d, err := decimal.NewFromString(v.String)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing transaction value %q: %w", v.String, err)
		}
		sum = sum.Add(d)
	}
	return sum, rows.Err()
}
