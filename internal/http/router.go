package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/audit"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/customer"
	"github.com/MrJamesThe3rd/tally/internal/http/employee"
	"github.com/MrJamesThe3rd/tally/internal/http/invoice"
	"github.com/MrJamesThe3rd/tally/internal/http/ledger"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/payroll"
	"github.com/MrJamesThe3rd/tally/internal/http/product"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/http/settings"
	userhandler "github.com/MrJamesThe3rd/tally/internal/http/user"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

type Handlers struct {
	Auth      *auth.Handler
	Users     *userhandler.Handler
	Invoices  *invoice.Handler
	Payroll   *payroll.Handler
	Ledger    *ledger.Handler
	Customers *customer.Handler
	Products  *product.Handler
	Employees *employee.Handler
	Settings  *settings.Handler
	Reports   *report.Handler
	Audit     *audit.Handler
}

func New(userSvc *user.Service, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			h.Auth.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(userSvc))

			r.Route("/me", h.Auth.Routes)
			r.Route("/invoices", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				h.Invoices.Routes(r)
			})
			r.Route("/payroll", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				h.Payroll.Routes(r)
			})
			r.Route("/transactions", h.Ledger.TransactionRoutes)
			r.Route("/accounts", h.Ledger.AccountRoutes)
			r.Route("/categories", h.Ledger.CategoryRoutes)
			r.Route("/customers", h.Customers.Routes)
			r.Route("/products", h.Products.Routes)
			r.Route("/employees", h.Employees.Routes)
			r.Route("/settings", h.Settings.Routes)
			r.Route("/reports", h.Reports.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/users", h.Users.Routes)
				r.Route("/audit-logs", h.Audit.Routes)
			})
		})
	})

	return router
}
