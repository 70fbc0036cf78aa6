package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a transaction carries a value without a currency.
const DefaultCurrency = "USD"

// Transaction is an immutable ledger entry.
type Transaction struct {
	ID             string           `json:"id"`
	Type           TransactionType  `json:"type"`
	Asset          AssetRef         `json:"asset,omitzero"`
	FromID         *string          `json:"from_id"`
	ToID           *string          `json:"to_id"`
	ContractNumber string           `json:"contract_number,omitempty"`
	Value          *decimal.Decimal `json:"value"`
	Currency       string           `json:"currency"`
	Details        string           `json:"details,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
	CreatedAt      time.Time        `json:"created_at"`

	// Joined fields (not always populated).
	WeaponSerial   string         `json:"weapon_serial,omitempty"`
	WeaponTypeName string         `json:"weapon_type_name,omitempty"`
	WeaponCategory WeaponCategory `json:"weapon_category,omitempty"`
	EquipmentName  string         `json:"equipment_name,omitempty"`
	FromName       string         `json:"from_name,omitempty"`
	ToName         string         `json:"to_name,omitempty"`
}

// WeaponID returns the referenced weapon id, if any.
func (t *Transaction) WeaponID() (string, bool) {
	if t.Asset.Kind == AssetWeapon {
		return t.Asset.ID, true
	}
	return "", false
}

// EquipmentID returns the referenced equipment id, if any.
func (t *Transaction) EquipmentID() (string, bool) {
	if t.Asset.Kind == AssetEquipment {
		return t.Asset.ID, true
	}
	return "", false
}
