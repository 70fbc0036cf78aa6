package model

import "github.com/shopspring/decimal"

// Counts holds row totals per table.
type Counts struct {
	Governments  int `json:"governments"`
	Weapons      int `json:"weapons"`
	Equipment    int `json:"equipment"`
	Transactions int `json:"transactions"`
}

// Stats is the dashboard summary. Configured is false when the store could not
// be reached, in which case every other field is empty.
type Stats struct {
	Configured         bool                    `json:"configured"`
	Counts             Counts                  `json:"counts"`
	WeaponsByStatus    map[WeaponStatus]int    `json:"weapons_by_status"`
	TransactionsByType map[TransactionType]int `json:"transactions_by_type"`
	TotalSalesValue    decimal.Decimal         `json:"total_sales_value"`
	RecentTransactions []Transaction           `json:"recent_transactions"`
}
