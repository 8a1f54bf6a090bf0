package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// NormalBalance indicates which ledger side increases the account.
type NormalBalance string

// AccountStatus is the lifecycle state of a chart-of-accounts node.
type AccountStatus string

// Account is the database representation of a chart-of-accounts node.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	AccountCategory string        `json:"accountCategory"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	ParentAccountID string        `json:"parentAccountID"` // Empty string maps to NULL
	Level           int           `json:"level"`
	IsDetailAccount bool          `json:"isDetailAccount"`
	Status          AccountStatus `json:"status"`
	AuditFields
}
