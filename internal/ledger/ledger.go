package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// TransactionType classifies a ledger entry. Income adds to the account
// balance, Expense subtracts.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome, TypeExpense:
		return TransactionType(s), nil
	}

	return "", fault.Invalidf("unknown transaction type %q", s)
}

// AccountType classifies an account.
type AccountType string

const (
	AccountCash   AccountType = "Cash"
	AccountBank   AccountType = "Bank"
	AccountCredit AccountType = "Credit"
)

func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountCash, AccountBank, AccountCredit:
		return AccountType(s), nil
	}

	return "", fault.Invalidf("unknown account type %q", s)
}

// CategoryType classifies a transaction category.
type CategoryType string

const (
	CategoryIncome  CategoryType = "Income"
	CategoryExpense CategoryType = "Expense"
)

func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(s) {
	case CategoryIncome, CategoryExpense:
		return CategoryType(s), nil
	}

	return "", fault.Invalidf("unknown category type %q", s)
}

// Account is a cash, bank or credit account. Balance is a materialized
// aggregate of the transactions referencing the account: it is never edited
// directly, only projected forward inside the same atomic unit that writes
// each transaction.
type Account struct {
	ID       int64
	Name     string
	Type     AccountType
	Balance  decimal.Decimal
	Currency string
}

// Category groups transactions for reporting.
type Category struct {
	ID   int64
	Name string
	Type CategoryType
}

// Transaction is one immutable ledger entry. There is no update path;
// corrections are new entries.
type Transaction struct {
	ID          int64
	AccountID   int64
	CategoryID  *int64
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Date        time.Time
	ReferenceID string
	CreatedAt   time.Time
}

// Signed returns the amount with the sign implied by the type: positive for
// Income, negative for Expense.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}
