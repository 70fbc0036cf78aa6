package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/arsenal/internal/model"
)

// WeaponTypeFilter narrows ListWeaponTypes. Zero values match everything.
type WeaponTypeFilter struct {
	Category model.WeaponCategory
	Brand    string
}

// CreateWeaponType inserts wt.
func (q queries) CreateWeaponType(ctx context.Context, wt *model.WeaponType) error {
	_, err := q.exec(ctx, sq.Insert("weapon_types").
		Columns("id", "name", "category", "brand", "description", "created_at").
		Values(wt.ID, wt.Name, string(wt.Category), wt.Brand, nullString(wt.Description), wt.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating weapon type: %w", classify(err, "weapon type"))
	}
	return nil
}

// GetWeaponType returns a weapon type by ID, or nil if it does not exist.
func (q queries) GetWeaponType(ctx context.Context, id string) (*model.WeaponType, error) {
	var wt model.WeaponType
	var description sql.NullString
	err := q.queryRow(ctx,
		sq.Select("id", "name", "category", "brand", "description", "created_at").
			From("weapon_types").Where(sq.Eq{"id": id}),
		&wt.ID, &wt.Name, &wt.Category, &wt.Brand, &description, &wt.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting weapon type: %w", err)
	}
	wt.Description = description.String
	return &wt, nil
}

// ListWeaponTypes returns weapon types ordered by category and name, each with
// the number of weapons of that type.
func (q queries) ListWeaponTypes(ctx context.Context, f WeaponTypeFilter) ([]model.WeaponType, error) {
	b := sq.Select("wt.id", "wt.name", "wt.category", "wt.brand", "wt.description", "wt.created_at").
		Column("(SELECT COUNT(*) FROM weapons w WHERE w.weapon_type_id = wt.id)").
		From("weapon_types wt").
		OrderBy("wt.category", "wt.name")

	if f.Category != "" {
		b = b.Where(sq.Eq{"wt.category": string(f.Category)})
	}
	if f.Brand != "" {
		b = b.Where(sq.Like{"lower(wt.brand)": "%" + strings.ToLower(f.Brand) + "%"})
	}

	rows, err := q.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing weapon types: %w", err)
	}
	defer rows.Close()

	types := []model.WeaponType{}
	for rows.Next() {
		var wt model.WeaponType
		var description sql.NullString
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Category, &wt.Brand, &description, &wt.CreatedAt, &wt.WeaponCount); err != nil {
			return nil, fmt.Errorf("scanning weapon type: %w", err)
		}
		wt.Description = description.String
		types = append(types, wt)
	}
	return types, rows.Err()
}
