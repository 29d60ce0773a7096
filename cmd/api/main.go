package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	auditStore "github.com/MrJamesThe3rd/tally/internal/audit/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/customer"
	customerStore "github.com/MrJamesThe3rd/tally/internal/customer/store"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/employee"
	employeeStore "github.com/MrJamesThe3rd/tally/internal/employee/store"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	auditHandler "github.com/MrJamesThe3rd/tally/internal/http/audit"
	authHandler "github.com/MrJamesThe3rd/tally/internal/http/auth"
	customerHandler "github.com/MrJamesThe3rd/tally/internal/http/customer"
	employeeHandler "github.com/MrJamesThe3rd/tally/internal/http/employee"
	invoiceHandler "github.com/MrJamesThe3rd/tally/internal/http/invoice"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	payrollHandler "github.com/MrJamesThe3rd/tally/internal/http/payroll"
	productHandler "github.com/MrJamesThe3rd/tally/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	settingsHandler "github.com/MrJamesThe3rd/tally/internal/http/settings"
	userHandler "github.com/MrJamesThe3rd/tally/internal/http/user"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/tally/internal/invoice/store"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/payroll"
	payrollStore "github.com/MrJamesThe3rd/tally/internal/payroll/store"
	"github.com/MrJamesThe3rd/tally/internal/product"
	productStore "github.com/MrJamesThe3rd/tally/internal/product/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	reportStore "github.com/MrJamesThe3rd/tally/internal/report/store"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/tally/internal/settings/store"
	"github.com/MrJamesThe3rd/tally/internal/user"
	userStore "github.com/MrJamesThe3rd/tally/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		auditService    = audit.NewService(auditStore.New(db), slog.Default())
		userService     = user.NewService(userStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		payrollService  = payroll.NewService(payrollStore.New(db), cfg.Ledger.DisbursementAccountID)
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		customerService = customer.NewService(customerStore.New(db))
		productService  = product.NewService(productStore.New(db))
		employeeService = employee.NewService(employeeStore.New(db))
		settingsService = settings.NewService(settingsStore.New(db))
		reportService   = report.NewService(reportStore.New(db), cfg.Ledger.DisbursementAccountID)
	)

	if err := userService.EnsureAdmin(context.Background(), "admin", "admin1234"); err != nil {
		slog.Error("failed to ensure admin user", "error", err)
		os.Exit(1)
	}

	router := tallyHttp.New(userService, tallyHttp.Handlers{
		Auth:      authHandler.NewHandler(userService, auditService),
		Users:     userHandler.NewHandler(userService, auditService),
		Invoices:  invoiceHandler.NewHandler(invoiceService, auditService),
		Payroll:   payrollHandler.NewHandler(payrollService, auditService),
		Ledger:    ledgerHandler.NewHandler(ledgerService, auditService),
		Customers: customerHandler.NewHandler(customerService, auditService),
		Products:  productHandler.NewHandler(productService, auditService),
		Employees: employeeHandler.NewHandler(employeeService, auditService),
		Settings:  settingsHandler.NewHandler(settingsService, auditService),
		Reports:   reportHandler.NewHandler(reportService),
		Audit:     auditHandler.NewHandler(auditService),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", cfg.Addr())

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
