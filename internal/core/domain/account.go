package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	COGS      AccountType = "COGS"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side of the ledger increases an account's balance.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// AccountStatus is the lifecycle state of a chart-of-accounts node.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountArchived AccountStatus = "ARCHIVED"
)

// Account represents a node in the chart of accounts.
// Only detail (leaf) accounts may be posted to; summary accounts exist for
// aggregation and must never appear on a journal line.
type Account struct {
	AccountID       string        `json:"accountID"`       // Primary key (UUID)
	Code            string        `json:"code"`            // Unique human-readable code
	Name            string        `json:"name"`            // Display name
	AccountType     AccountType   `json:"accountType"`     // ASSET, LIABILITY, etc.
	AccountCategory string        `json:"accountCategory"` // Finer classification, free-form
	NormalBalance   NormalBalance `json:"normalBalance"`   // Immutable once postings exist
	ParentAccountID string        `json:"parentAccountID"` // Nullable self-reference
	Level           int           `json:"level"`           // Depth from root, root = 1
	IsDetailAccount bool          `json:"isDetailAccount"` // Only detail accounts are postable
	Status          AccountStatus `json:"status"`
	AuditFields
}

// IsPostable reports whether journal lines may reference this account.
// Archived accounts are never postable; inactive accounts are rejected at
// posting time as well since deactivation is the soft-delete path.
func (a Account) IsPostable() bool {
	return a.IsDetailAccount && a.Status == AccountActive
}

// DefaultNormalBalance returns the conventional normal balance for an account type.
func DefaultNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense, COGS:
		return NormalDebit
	default:
		return NormalCredit
	}
}
