package model

import "time"

// Equipment is a quantity-tracked non-weapon asset.
type Equipment struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	SerialNumber *string           `json:"serial_number"`
	Category     EquipmentCategory `json:"category"`
	Brand        string            `json:"brand,omitempty"`
	Quantity     int               `json:"quantity"`
	Description  string            `json:"description,omitempty"`
	Status       EquipmentStatus   `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
