package model

// WeaponCategory classifies a weapon type.
type WeaponCategory string

// Weapon categories.
const (
	WeaponCategorySmallArms       WeaponCategory = "SmallArms"
	WeaponCategoryArtillery       WeaponCategory = "Artillery"
	WeaponCategoryArmoredVehicles WeaponCategory = "ArmoredVehicles"
	WeaponCategoryAircraft        WeaponCategory = "Aircraft"
	WeaponCategoryNavalSystems    WeaponCategory = "NavalSystems"
	WeaponCategoryMissiles        WeaponCategory = "Missiles"
	WeaponCategoryAmmunition      WeaponCategory = "Ammunition"
	WeaponCategoryElectronics     WeaponCategory = "Electronics"
	WeaponCategoryOther           WeaponCategory = "Other"
)

// WeaponCategories returns every weapon category in display order.
func WeaponCategories() []WeaponCategory {
	return []WeaponCategory{
		WeaponCategorySmallArms, WeaponCategoryArtillery, WeaponCategoryArmoredVehicles,
		WeaponCategoryAircraft, WeaponCategoryNavalSystems, WeaponCategoryMissiles,
		WeaponCategoryAmmunition, WeaponCategoryElectronics, WeaponCategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c WeaponCategory) Valid() bool {
	switch c {
	case WeaponCategorySmallArms, WeaponCategoryArtillery, WeaponCategoryArmoredVehicles,
		WeaponCategoryAircraft, WeaponCategoryNavalSystems, WeaponCategoryMissiles,
		WeaponCategoryAmmunition, WeaponCategoryElectronics, WeaponCategoryOther:
		return true
	}
	return false
}

// WeaponStatus is the lifecycle state of a tracked weapon.
type WeaponStatus string

// Weapon statuses.
const (
	WeaponStatusAvailable   WeaponStatus = "Available"
	WeaponStatusSold        WeaponStatus = "Sold"
	WeaponStatusUnderRepair WeaponStatus = "UnderRepair"
	WeaponStatusDestroyed   WeaponStatus = "Destroyed"
	WeaponStatusDonated     WeaponStatus = "Donated"
	WeaponStatusReturned    WeaponStatus = "Returned"
)

// WeaponStatuses returns every weapon status.
func WeaponStatuses() []WeaponStatus {
	return []WeaponStatus{
		WeaponStatusAvailable, WeaponStatusSold, WeaponStatusUnderRepair,
		WeaponStatusDestroyed, WeaponStatusDonated, WeaponStatusReturned,
	}
}

// Valid reports whether s is a known status.
func (s WeaponStatus) Valid() bool {
	switch s {
	case WeaponStatusAvailable, WeaponStatusSold, WeaponStatusUnderRepair,
		WeaponStatusDestroyed, WeaponStatusDonated, WeaponStatusReturned:
		return true
	}
	return false
}

// EquipmentCategory classifies a piece of equipment.
type EquipmentCategory string

// Equipment categories.
const (
	EquipmentCategoryProtectiveGear  EquipmentCategory = "ProtectiveGear"
	EquipmentCategoryOptics          EquipmentCategory = "Optics"
	EquipmentCategoryCommunications  EquipmentCategory = "Communications"
	EquipmentCategoryVehicles        EquipmentCategory = "Vehicles"
	EquipmentCategoryMedicalSupplies EquipmentCategory = "MedicalSupplies"
	EquipmentCategoryClothing        EquipmentCategory = "Clothing"
	EquipmentCategoryTools           EquipmentCategory = "Tools"
	EquipmentCategoryOther           EquipmentCategory = "Other"
)

// Valid reports whether c is a known category.
func (c EquipmentCategory) Valid() bool {
	switch c {
	case EquipmentCategoryProtectiveGear, EquipmentCategoryOptics, EquipmentCategoryCommunications,
		EquipmentCategoryVehicles, EquipmentCategoryMedicalSupplies, EquipmentCategoryClothing,
		EquipmentCategoryTools, EquipmentCategoryOther:
		return true
	}
	return false
}

// EquipmentStatus is the state of an equipment record. It only changes through
// an explicit equipment update, never through the ledger.
type EquipmentStatus string

// Equipment statuses.
const (
	EquipmentStatusAvailable        EquipmentStatus = "Available"
	EquipmentStatusDeployed         EquipmentStatus = "Deployed"
	EquipmentStatusUnderMaintenance EquipmentStatus = "UnderMaintenance"
	EquipmentStatusRetired          EquipmentStatus = "Retired"
)

// Valid reports whether s is a known status.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusAvailable, EquipmentStatusDeployed,
		EquipmentStatusUnderMaintenance, EquipmentStatusRetired:
		return true
	}
	return false
}

// TransactionType is the kind of a ledger entry.
type TransactionType string

// Transaction types.
const (
	TransactionSale        TransactionType = "Sale"
	TransactionDelivery    TransactionType = "Delivery"
	TransactionReception   TransactionType = "Reception"
	TransactionReturn      TransactionType = "Return"
	TransactionRepair      TransactionType = "Repair"
	TransactionReplacement TransactionType = "Replacement"
	TransactionDestruction TransactionType = "Destruction"
	TransactionDonation    TransactionType = "Donation"
)

// TransactionTypes returns every transaction type.
func TransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionSale, TransactionDelivery, TransactionReception, TransactionReturn,
		TransactionRepair, TransactionReplacement, TransactionDestruction, TransactionDonation,
	}
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	_, err := TransitionFor(t)
	return err == nil
}
