package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type transactionResponse struct {
	ID          int64                  `json:"id"`
	AccountID   int64                  `json:"account_id"`
	CategoryID  *int64                 `json:"category_id,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        ledger.TransactionType `json:"type"`
	Description string                 `json:"description,omitempty"`
	Date        string                 `json:"date"`
	ReferenceID string                 `json:"reference_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Description: tx.Description,
		Date:        tx.Date.Format(time.DateOnly),
		ReferenceID: tx.ReferenceID,
		CreatedAt:   tx.CreatedAt,
	}
}

func toTransactionResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}

	return resp
}

type accountResponse struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Type     ledger.AccountType `json:"account_type"`
	Balance  decimal.Decimal    `json:"balance"`
	Currency string             `json:"currency"`
}

func toAccountResponse(a *ledger.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Type:     a.Type,
		Balance:  a.Balance,
		Currency: a.Currency,
	}
}

func toAccountResponseList(accounts []*ledger.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toAccountResponse(a)
	}

	return resp
}

type reconciliationResponse struct {
	AccountID       int64           `json:"account_id"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Balanced        bool            `json:"balanced"`
}

func toReconciliationResponse(rec ledger.Reconciliation) reconciliationResponse {
	return reconciliationResponse{
		AccountID:       rec.AccountID,
		StoredBalance:   rec.StoredBalance,
		ComputedBalance: rec.ComputedBalance,
		Balanced:        rec.Balanced(),
	}
}

type categoryResponse struct {
	ID   int64               `json:"id"`
	Name string              `json:"name"`
	Type ledger.CategoryType `json:"category_type"`
}

func toCategoryResponse(c *ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type}
}

func toCategoryResponseList(categories []*ledger.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	return resp
}
