package model

import "time"

// WeaponType is a catalog entry describing a model of weapon.
type WeaponType struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    WeaponCategory `json:"category"`
	Brand       string         `json:"brand"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	// Aggregates (list view only).
	WeaponCount int `json:"weapon_count"`
}

// Weapon is an individually tracked weapon identified by its serial number.
type Weapon struct {
	ID              string       `json:"id"`
	SerialNumber    string       `json:"serial_number"`
	WeaponTypeID    string       `json:"weapon_type_id"`
	Status          WeaponStatus `json:"status"`
	CurrentOwnerID  *string      `json:"current_owner_id"`
	AcquisitionDate *time.Time   `json:"acquisition_date,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Joined fields (not always populated).
	TypeName         string         `json:"type_name,omitempty"`
	TypeCategory     WeaponCategory `json:"type_category,omitempty"`
	TypeBrand        string         `json:"type_brand,omitempty"`
	CurrentOwnerName string         `json:"current_owner_name,omitempty"`
}

// WeaponDetail is a weapon with its ledger history.
type WeaponDetail struct {
	Weapon
	History []Transaction `json:"history"`
}
