package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/employee"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type Handler struct {
	svc   *employee.Service
	audit *audit.Service
}

func NewHandler(svc *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type employeeRequest struct {
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Salary     decimal.Decimal `json:"salary"`
	Allowances decimal.Decimal `json:"allowances"`
}

func (r employeeRequest) params() employee.Params {
	return employee.Params{
		Name:       r.Name,
		Role:       r.Role,
		Email:      r.Email,
		Phone:      r.Phone,
		Salary:     r.Salary,
		Allowances: r.Allowances,
	}
}

type employeeResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role,omitempty"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Salary     decimal.Decimal `json:"salary"`
	Allowances decimal.Decimal `json:"allowances"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Email:      e.Email,
		Phone:      e.Phone,
		Salary:     e.Salary,
		Allowances: e.Allowances,
		CreatedAt:  e.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"create", "employees", strconv.FormatInt(e.ID, 10), "created employee "+e.Name)

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]employeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = toResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"update", "employees", strconv.FormatInt(id, 10), "updated employee "+e.Name)

	respond.JSON(w, http.StatusOK, toResponse(e))
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
		"delete", "employees", strconv.FormatInt(id, 10), "deleted employee")

	respond.NoContent(w)
}
