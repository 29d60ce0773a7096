package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/cash-flow", h.cashFlow)
	r.Get("/categories", h.byCategory)
}

type recentInvoiceResponse struct {
	ID           int64           `json:"id"`
	Number       string          `json:"invoice_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	IssueDate    string          `json:"issue_date"`
	Total        decimal.Decimal `json:"total"`
}

type statsResponse struct {
	CashInHand     decimal.Decimal         `json:"cash_in_hand"`
	BankBalance    decimal.Decimal         `json:"bank_balance"`
	TotalIncome    decimal.Decimal         `json:"total_income"`
	TotalExpense   decimal.Decimal         `json:"total_expense"`
	NetBalance     decimal.Decimal         `json:"net_balance"`
	Receivables    decimal.Decimal         `json:"receivables"`
	InvoiceCount   int64                   `json:"invoice_count"`
	CustomerCount  int64                   `json:"customer_count"`
	RecentInvoices []recentInvoiceResponse `json:"recent_invoices"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	recent := make([]recentInvoiceResponse, len(stats.RecentInvoices))
	for i, inv := range stats.RecentInvoices {
		recent[i] = recentInvoiceResponse{
			ID:           inv.ID,
			Number:       inv.Number,
			CustomerName: inv.CustomerName,
			Status:       inv.Status,
			IssueDate:    inv.IssueDate,
			Total:        inv.Total,
		}
	}

	respond.JSON(w, http.StatusOK, statsResponse{
		CashInHand:     stats.CashInHand,
		BankBalance:    stats.BankBalance,
		TotalIncome:    stats.TotalIncome,
		TotalExpense:   stats.TotalExpense,
		NetBalance:     stats.NetBalance,
		Receivables:    stats.Receivables,
		InvoiceCount:   stats.InvoiceCount,
		CustomerCount:  stats.CustomerCount,
		RecentInvoices: recent,
	})
}

type monthlyFlowResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	months := 0

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		months = n
	}

	flows, err := h.svc.CashFlow(r.Context(), months)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]monthlyFlowResponse, len(flows))
	for i, f := range flows {
		resp[i] = monthlyFlowResponse{Month: f.Month, Income: f.Income, Expense: f.Expense}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type categoryTotalResponse struct {
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.ByCategory(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{Category: t.Category, Type: t.Type, Total: t.Total}
	}

	respond.JSON(w, http.StatusOK, resp)
}
