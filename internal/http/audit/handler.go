package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"user_id,omitempty"`
	Action      string    `json:"action"`
	Module      string    `json:"module"`
	RecordID    string    `json:"record_id,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{Module: r.URL.Query().Get("module")}

	if s := r.URL.Query().Get("user_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid user_id", http.StatusBadRequest)
			return
		}

		filter.UserID = id
	}

	if s := r.URL.Query().Get("from"); s != "" {
		from, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return
		}

		filter.From = from
	}

	if s := r.URL.Query().Get("to"); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid to", http.StatusBadRequest)
			return
		}

		// Inclusive end of day.
		filter.To = to.Add(24*time.Hour - time.Second)
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		filter.Limit = n
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			Action:      e.Action,
			Module:      e.Module,
			RecordID:    e.RecordID,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
