package invoice

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
	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type Handler struct {
	svc   *invoice.Service
	audit *audit.Service
}

func NewHandler(svc *invoice.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/next-number", h.nextNumber)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
}

type createInvoiceRequest struct {
	CustomerID      int64           `json:"customer_id"`
	Status          string          `json:"status"`
	IssueDate       string          `json:"issue_date"`
	DueDate         string          `json:"due_date"`
	Notes           string          `json:"notes"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountFlat    decimal.Decimal `json:"discount_flat"`
	Advance         decimal.Decimal `json:"advance"`
	Items           []itemRequest   `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	issueDate, err := time.Parse(time.DateOnly, req.IssueDate)
	if err != nil {
		http.Error(w, "invalid issue_date", http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date", http.StatusBadRequest)
		return
	}

	items := make([]invoice.ItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = invoice.ItemParams{
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxPercent:  it.TaxPercent,
		}
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CustomerID:      req.CustomerID,
		Status:          invoice.Status(req.Status),
		IssueDate:       issueDate,
		DueDate:         dueDate,
		Notes:           req.Notes,
		DiscountPercent: req.DiscountPercent,
		DiscountFlat:    req.DiscountFlat,
		Advance:         req.Advance,
		Items:           items,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"create", "invoices", strconv.FormatInt(inv.ID, 10), "created invoice "+inv.Number)

	respond.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := invoice.ParseStatus(s)
		if err != nil {
			respond.Error(w, err)
			return
		}

		filter.Status = &status
	}

	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid customer_id", http.StatusBadRequest)
			return
		}

		filter.CustomerID = &id
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.svc.NextNumber(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"invoice_number": number})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"update", "invoices", strconv.FormatInt(id, 10), "set invoice status to "+req.Status)

	respond.NoContent(w)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"delete", "invoices", strconv.FormatInt(id, 10), "deleted invoice")

	respond.NoContent(w)
}
