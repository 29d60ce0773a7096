package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

type Handler struct {
	svc   *user.Service
	audit *audit.Service
}

func NewHandler(svc *user.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, audit: auditSvc}
}

// PublicRoutes are mounted outside the authenticated group.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/change-password", h.changePassword)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        user.Role `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.audit.Record(r.Context(), nil, "login_failed", "auth", "", "failed login for "+req.Username)
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})

		return
	}

	h.audit.Record(r.Context(), &u.ID, "login", "auth", "", u.Username+" logged in")

	respond.JSON(w, http.StatusOK, loginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      toUserResponse(u),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserIDFrom(r.Context())
	if id == nil {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	u, err := h.svc.Get(r.Context(), *id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserIDFrom(r.Context())
	if id == nil {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), *id, req.Password); err != nil {
		respond.Error(w, err)
		return
	}

	h.audit.Record(r.Context(), id, "update", "auth", "", "changed own password")

	respond.NoContent(w)
}
