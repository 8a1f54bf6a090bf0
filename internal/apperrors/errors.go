package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Chart of accounts errors.
var (
	// ErrDuplicateCode indicates an account code collision in the chart of accounts.
	ErrDuplicateCode = errors.New("account code already exists")
	// ErrInvalidHierarchy indicates a missing parent or a cycle in the account tree.
	ErrInvalidHierarchy = errors.New("invalid account hierarchy")
	// ErrAccountHasTransactions guards structural changes to accounts that have postings.
	ErrAccountHasTransactions = errors.New("account has transactions")
	// ErrInvalidAccount indicates a line references a non-detail or archived account.
	ErrInvalidAccount = errors.New("account is not postable")
)

// Journal entry errors.
var (
	// ErrUnbalancedEntry indicates debit and credit totals of an entry differ.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")
	ErrAlreadyPosted   = errors.New("journal entry is already posted")
	ErrAlreadyVoided   = errors.New("journal entry is already voided")
	ErrNotPosted       = errors.New("journal entry is not posted")
)

// Fiscal period errors.
var (
	// ErrPeriodNotOpen indicates the entry date falls in a period that is not open for posting.
	ErrPeriodNotOpen = errors.New("fiscal period is not open")
	// ErrPeriodLocked indicates the period is locked and permits no further changes.
	ErrPeriodLocked  = errors.New("fiscal period is locked")
	ErrAlreadyLocked = errors.New("fiscal period is already locked")
)
