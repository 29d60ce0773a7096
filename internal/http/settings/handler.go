package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

type Handler struct {
	svc   *settings.Service
	audit *audit.Service
}

func NewHandler(svc *settings.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type settingsPayload struct {
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address,omitempty"`
	BusinessPhone   string `json:"business_phone,omitempty"`
	BusinessEmail   string `json:"business_email,omitempty"`
	BusinessTagline string `json:"business_tagline,omitempty"`
	CurrencySymbol  string `json:"currency_symbol"`
	TaxLabel        string `json:"tax_label"`
	DefaultFooter   string `json:"default_footer,omitempty"`
	TemplateType    string `json:"template_type"`
	BankName        string `json:"bank_name,omitempty"`
	BankAccountName string `json:"bank_account_name,omitempty"`
	BankAccountNo   string `json:"bank_account_no,omitempty"`
	BankBranch      string `json:"bank_branch,omitempty"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, settingsPayload{
		BusinessName:    s.BusinessName,
		BusinessAddress: s.BusinessAddress,
		BusinessPhone:   s.BusinessPhone,
		BusinessEmail:   s.BusinessEmail,
		BusinessTagline: s.BusinessTagline,
		CurrencySymbol:  s.CurrencySymbol,
		TaxLabel:        s.TaxLabel,
		DefaultFooter:   s.DefaultFooter,
		TemplateType:    s.TemplateType,
		BankName:        s.BankName,
		BankAccountName: s.BankAccountName,
		BankAccountNo:   s.BankAccountNo,
		BankBranch:      s.BankBranch,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s := &settings.Settings{
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		BusinessPhone:   req.BusinessPhone,
		BusinessEmail:   req.BusinessEmail,
		BusinessTagline: req.BusinessTagline,
		CurrencySymbol:  req.CurrencySymbol,
		TaxLabel:        req.TaxLabel,
		DefaultFooter:   req.DefaultFooter,
		TemplateType:    req.TemplateType,
		BankName:        req.BankName,
		BankAccountName: req.BankAccountName,
		BankAccountNo:   req.BankAccountNo,
		BankBranch:      req.BankBranch,
	}

	if err := h.svc.Update(r.Context(), s); err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), middleware.UserIDFrom(r.Context()),
		"update", "settings", "1", "updated business settings")

	respond.NoContent(w)
}
