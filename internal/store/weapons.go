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

// WeaponFilter narrows ListWeapons. Zero values match everything.
type WeaponFilter struct {
	Status   model.WeaponStatus
	OwnerID  string
	Category model.WeaponCategory
	// Query matches serial number, type name or brand, case-insensitively.
	Query string
}

func weaponSelect() sq.SelectBuilder {
	return sq.Select(
		"w.id", "w.serial_number", "w.weapon_type_id", "w.status", "w.current_owner_id",
		"w.acquisition_date", "w.notes", "w.created_at", "w.updated_at",
		"wt.name", "wt.category", "wt.brand", "COALESCE(g.name, '')",
	).
		From("weapons w").
		Join("weapon_types wt ON wt.id = w.weapon_type_id").
		LeftJoin("governments g ON g.id = w.current_owner_id")
}

func scanWeapon(scan func(dest ...any) error) (model.Weapon, error) {
	var w model.Weapon
	var owner, notes sql.NullString
	var acquired sql.NullTime
	err := scan(&w.ID, &w.SerialNumber, &w.WeaponTypeID, &w.Status, &owner,
		&acquired, &notes, &w.CreatedAt, &w.UpdatedAt,
		&w.TypeName, &w.TypeCategory, &w.TypeBrand, &w.CurrentOwnerName)
	if err != nil {
		return w, err
	}
	w.CurrentOwnerID = ptrFromNull(owner)
	w.Notes = notes.String
	if acquired.Valid {
		t := acquired.Time
		w.AcquisitionDate = &t
	}
	return w, nil
}

// CreateWeapon inserts w.
func (q queries) CreateWeapon(ctx context.Context, w *model.Weapon) error {
	var acquired any
	if w.AcquisitionDate != nil {
		acquired = w.AcquisitionDate.UTC()
	}
	_, err := q.exec(ctx, sq.Insert("weapons").
		Columns("id", "serial_number", "weapon_type_id", "status", "current_owner_id",
			"acquisition_date", "notes", "created_at", "updated_at").
		Values(w.ID, w.SerialNumber, w.WeaponTypeID, string(w.Status), nullStringPtr(w.CurrentOwnerID),
			acquired, nullString(w.Notes), w.CreatedAt, w.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating weapon: %w", classify(err, "weapon"))
	}
	return nil
}

// GetWeapon returns a weapon with its type and owner names, or nil if it does
// not exist.
func (q queries) GetWeapon(ctx context.Context, id string) (*model.Weapon, error) {
	query, args, err := weaponSelect().Where(sq.Eq{"w.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	w, err := scanWeapon(q.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting weapon: %w", err)
	}
	return &w, nil
}

// ListWeapons returns weapons newest first.
func (q queries) ListWeapons(ctx context.Context, f WeaponFilter) ([]model.Weapon, error) {
	b := weaponSelect().OrderBy("w.created_at DESC", "w.rowid DESC")

	if f.Status != "" {
		b = b.Where(sq.Eq{"w.status": string(f.Status)})
	}
	if f.OwnerID != "" {
		b = b.Where(sq.Eq{"w.current_owner_id": f.OwnerID})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"wt.category": string(f.Category)})
	}
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		b = b.Where(sq.Or{
			sq.Like{"lower(w.serial_number)": pattern},
			sq.Like{"lower(wt.name)": pattern},
			sq.Like{"lower(wt.brand)": pattern},
		})
	}

	rows, err := q.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing weapons: %w", err)
	}
	defer rows.Close()

	weapons := []model.Weapon{}
	for rows.Next() {
		w, err := scanWeapon(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning weapon: %w", err)
		}
		weapons = append(weapons, w)
	}
	return weapons, rows.Err()
}

// UpdateWeaponState persists the status and owner of w.
func (q queries) UpdateWeaponState(ctx context.Context, w *model.Weapon) error {
	res, err := q.exec(ctx, sq.Update("weapons").
		Set("status", string(w.Status)).
		Set("current_owner_id", nullStringPtr(w.CurrentOwnerID)).
		Set("updated_at", w.UpdatedAt).
		Where(sq.Eq{"id": w.ID}))
	if err != nil {
		return fmt.Errorf("updating weapon state: %w", classify(err, "weapon"))
	}
	return expectRow(res, "weapon", w.ID)
}
