package payroll

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
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/payroll"
)

type Handler struct {
	svc   *payroll.Service
	audit *audit.Service
}

func NewHandler(svc *payroll.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type createPayrollRequest struct {
	EmployeeID      int64           `json:"employee_id"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	Tax             decimal.Decimal `json:"tax"`
	LatePenalties   decimal.Decimal `json:"late_penalties"`
	Absences        decimal.Decimal `json:"absences"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	PayPeriodStart  string          `json:"pay_period_start"`
	PayPeriodEnd    string          `json:"pay_period_end"`
	PaymentDate     string          `json:"payment_date"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	periodStart, err := time.Parse(time.DateOnly, req.PayPeriodStart)
	if err != nil {
		http.Error(w, "invalid pay_period_start", http.StatusBadRequest)
		return
	}

	periodEnd, err := time.Parse(time.DateOnly, req.PayPeriodEnd)
	if err != nil {
		http.Error(w, "invalid pay_period_end", http.StatusBadRequest)
		return
	}

	paymentDate, err := time.Parse(time.DateOnly, req.PaymentDate)
	if err != nil {
		http.Error(w, "invalid payment_date", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), payroll.CreateParams{
		EmployeeID: req.EmployeeID,
		Components: payroll.Components{
			BaseSalary:      req.BaseSalary,
			OvertimePay:     req.OvertimePay,
			Bonuses:         req.Bonuses,
			Allowances:      req.Allowances,
			Tax:             req.Tax,
			LatePenalties:   req.LatePenalties,
			Absences:        req.Absences,
			OtherDeductions: req.OtherDeductions,
		},
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
		PaymentDate:    paymentDate,
		Status:         payroll.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"create", "payroll", strconv.FormatInt(rec.ID, 10),
		"created payroll record for "+rec.EmployeeName+", net pay "+money.Format("", rec.NetPay))

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}
