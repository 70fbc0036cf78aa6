package model

import "time"

// Government is a state entity that owns weapons and takes part in transactions.
type Government struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CountryCode   string    `json:"country_code"`
	ContactEmail  string    `json:"contact_email"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Aggregates, filled on reads.
	WeaponsOwned         int `json:"weapons_owned"`
	TransactionsReceived int `json:"transactions_received"`
}

// GovernmentDetail is a government with its holdings and latest incoming transactions.
type GovernmentDetail struct {
	Government
	Weapons              []Weapon      `json:"weapons"`
	ReceivedTransactions []Transaction `json:"received_transactions"`
}
