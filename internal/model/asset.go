package model

import "fmt"

// AssetKind discriminates AssetRef.
type AssetKind string

// Asset kinds. The zero value means the transaction references no asset.
const (
	AssetNone      AssetKind = ""
	AssetWeapon    AssetKind = "weapon"
	AssetEquipment AssetKind = "equipment"
)

// AssetRef is the subject of a transaction: a weapon, a piece of equipment, or nothing.
type AssetRef struct {
	Kind AssetKind `json:"kind"`
	ID   string    `json:"id"`
}

// NoAsset is the empty reference.
var NoAsset = AssetRef{}

// WeaponRef references a weapon.
func WeaponRef(id string) AssetRef { return AssetRef{Kind: AssetWeapon, ID: id} }

// EquipmentRef references a piece of equipment.
func EquipmentRef(id string) AssetRef { return AssetRef{Kind: AssetEquipment, ID: id} }

// NewAssetRef builds a reference from the optional weapon and equipment ids of a
// request. Setting both is an error.
func NewAssetRef(weaponID, equipmentID string) (AssetRef, error) {
	switch {
	case weaponID != "" && equipmentID != "":
		return NoAsset, fmt.Errorf("a transaction references either a weapon or equipment, not both")
	case weaponID != "":
		return WeaponRef(weaponID), nil
	case equipmentID != "":
		return EquipmentRef(equipmentID), nil
	}
	return NoAsset, nil
}

// IsZero reports whether the reference is empty.
func (a AssetRef) IsZero() bool { return a.Kind == AssetNone }
