package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
)

var governmentColumns = []string{
	"g.id", "g.name", "g.country_code", "g.contact_email", "g.contact_person",
	"g.phone", "g.address", "g.created_at", "g.updated_at",
}

// selectGovernments selects governmentColumns followed by the owned weapon and
// received transaction counts.
func selectGovernments() sq.SelectBuilder {
	return sq.Select(governmentColumns...).
		Column("(SELECT COUNT(*) FROM weapons w WHERE w.current_owner_id = g.id)").
		Column("(SELECT COUNT(*) FROM transactions t WHERE t.to_id = g.id)").
		From("governments g")
}

// CreateGovernment inserts g.
func (q queries) CreateGovernment(ctx context.Context, g *model.Government) error {
	_, err := q.exec(ctx, sq.Insert("governments").
		Columns("id", "name", "country_code", "contact_email", "contact_person", "phone", "address", "created_at", "updated_at").
		Values(g.ID, g.Name, g.CountryCode, g.ContactEmail, nullString(g.ContactPerson),
			nullString(g.Phone), nullString(g.Address), g.CreatedAt, g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating government: %w", classify(err, "government"))
	}
	return nil
}

// GetGovernment returns a government by ID with its holding and incoming
// transaction counts, or nil if it does not exist.
func (q queries) GetGovernment(ctx context.Context, id string) (*model.Government, error) {
	var g model.Government
	var person, phone, address sql.NullString
	err := q.queryRow(ctx,
		selectGovernments().Where(sq.Eq{"g.id": id}),
		&g.ID, &g.Name, &g.CountryCode, &g.ContactEmail, &person, &phone, &address, &g.CreatedAt, &g.UpdatedAt,
		&g.WeaponsOwned, &g.TransactionsReceived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting government: %w", err)
	}
	g.ContactPerson = person.String
	g.Phone = phone.String
	g.Address = address.String
	return &g, nil
}

// ListGovernments returns all governments ordered by name with holding and
// incoming transaction counts.
func (q queries) ListGovernments(ctx context.Context) ([]model.Government, error) {
	b := selectGovernments().OrderBy("g.name")

	rows, err := q.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing governments: %w", err)
	}
	defer rows.Close()

	governments := []model.Government{}
	for rows.Next() {
		var g model.Government
		var person, phone, address sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.CountryCode, &g.ContactEmail, &person, &phone, &address,
			&g.CreatedAt, &g.UpdatedAt, &g.WeaponsOwned, &g.TransactionsReceived); err != nil {
			return nil, fmt.Errorf("scanning government: %w", err)
		}
		g.ContactPerson = person.String
		g.Phone = phone.String
		g.Address = address.String
		governments = append(governments, g)
	}
	return governments, rows.Err()
}

// UpdateGovernment overwrites the mutable fields of g.
func (q queries) UpdateGovernment(ctx context.Context, g *model.Government) error {
	res, err := q.exec(ctx, sq.Update("governments").
		Set("name", g.Name).
		Set("country_code", g.CountryCode).
		Set("contact_email", g.ContactEmail).
		Set("contact_person", nullString(g.ContactPerson)).
		Set("phone", nullString(g.Phone)).
		Set("address", nullString(g.Address)).
		Set("updated_at", g.UpdatedAt).
		Where(sq.Eq{"id": g.ID}))
	if err != nil {
		return fmt.Errorf("updating government: %w", classify(err, "government"))
	}
	return expectRow(res, "government", g.ID)
}

// DeleteGovernment removes a government. Weapons it owns become unowned and
// ledger entries keep their other fields.
func (q queries) DeleteGovernment(ctx context.Context, id string) error {
	res, err := q.exec(ctx, sq.Delete("governments").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("deleting government: %w", classify(err, "government"))
	}
	return expectRow(res, "government", id)
}

// expectRow returns a not-found error when a statement touched no rows.
func expectRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("%s %s not found", what, id)
	}
	return nil
}
