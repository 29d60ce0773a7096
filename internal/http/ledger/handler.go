package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type Handler struct {
	svc   *ledger.Service
	audit *audit.Service
}

func NewHandler(svc *ledger.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

func (h *Handler) TransactionRoutes(r chi.Router) {
	r.Post("/", h.createTransaction)
	r.Get("/", h.listTransactions)
}

func (h *Handler) AccountRoutes(r chi.Router) {
	r.Post("/", h.createAccount)
	r.Get("/", h.listAccounts)
	r.Get("/{id}", h.getAccount)
	r.Get("/{id}/reconciliation", h.reconcile)
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Post("/", h.createCategory)
	r.Get("/", h.listCategories)
	r.Delete("/{id}", h.deleteCategory)
}

type createTransactionRequest struct {
	AccountID   int64           `json:"account_id"`
	CategoryID  *int64          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	ReferenceID string          `json:"reference_id"`
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), ledger.CreateTransactionParams{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        ledger.TransactionType(req.Type),
		Description: req.Description,
		Date:        date,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"create", "transactions", strconv.FormatInt(tx.ID, 10),
		"posted "+req.Type+" transaction of "+money.Format("", tx.Amount))

	respond.JSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	txs, err := h.svc.ListTransactions(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTransactionResponseList(txs))
}

type createAccountRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"account_type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.svc.CreateAccount(r.Context(), ledger.CreateAccountParams{
		Name:     req.Name,
		Type:     ledger.AccountType(req.Type),
		Balance:  req.Balance,
		Currency: req.Currency,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"create", "accounts", strconv.FormatInt(account.ID, 10),
		"created account "+account.Name)

	respond.JSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAccountResponseList(accounts))
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	account, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Reconcile(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReconciliationResponse(rec))
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"category_type"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), ledger.CreateCategoryParams{
		Name: req.Name,
		Type: ledger.CategoryType(req.Type),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryResponseList(categories))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.NoContent(w)
}
