package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/arsenal/internal/model"
)

// EquipmentFilter narrows ListEquipment. Zero values match everything.
type EquipmentFilter struct {
	Category model.EquipmentCategory
	Status   model.EquipmentStatus
}

func equipmentSelect() sq.SelectBuilder {
	return sq.Select("id", "name", "serial_number", "category", "brand", "quantity",
		"description", "status", "created_at", "updated_at").
		From("equipment")
}

func scanEquipment(scan func(dest ...any) error) (model.Equipment, error) {
	var e model.Equipment
	var serial, brand, description sql.NullString
	err := scan(&e.ID, &e.Name, &serial, &e.Category, &brand, &e.Quantity,
		&description, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	e.SerialNumber = ptrFromNull(serial)
	e.Brand = brand.String
	e.Description = description.String
	return e, nil
}

// CreateEquipment inserts e.
func (q queries) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	_, err := q.exec(ctx, sq.Insert("equipment").
		Columns("id", "name", "serial_number", "category", "brand", "quantity",
			"description", "status", "created_at", "updated_at").
		Values(e.ID, e.Name, nullStringPtr(e.SerialNumber), string(e.Category), nullString(e.Brand),
			e.Quantity, nullString(e.Description), string(e.Status), e.CreatedAt, e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating equipment: %w", classify(err, "equipment"))
	}
	return nil
}

// GetEquipment returns an equipment record by ID, or nil if it does not exist.
func (q queries) GetEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	query, args, err := equipmentSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	e, err := scanEquipment(q.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting equipment: %w", err)
	}
	return &e, nil
}

// ListEquipment returns equipment newest first.
func (q queries) ListEquipment(ctx context.Context, f EquipmentFilter) ([]model.Equipment, error) {
	b := equipmentSelect().OrderBy("created_at DESC", "rowid DESC")
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": string(f.Category)})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": string(f.Status)})
	}

	rows, err := q.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()

	items := []model.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// UpdateEquipment overwrites the mutable fields of e.
func (q queries) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	res, err := q.exec(ctx, sq.Update("equipment").
		Set("name", e.Name).
		Set("serial_number", nullStringPtr(e.SerialNumber)).
		Set("category", string(e.Category)).
		Set("brand", nullString(e.Brand)).
		Set("quantity", e.Quantity).
		Set("description", nullString(e.Description)).
		Set("status", string(e.Status)).
		Set("updated_at", e.UpdatedAt).
		Where(sq.Eq{"id": e.ID}))
	if err != nil {
		return fmt.Errorf("updating equipment: %w", classify(err, "equipment"))
	}
	return expectRow(res, "equipment", e.ID)
}
