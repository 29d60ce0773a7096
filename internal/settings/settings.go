package settings

import (
	"context"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// Settings is the single business profile row. It always exists: the schema
// seeds it and Update writes in place, so Get never returns not found.
type Settings struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	BusinessEmail   string
	BusinessTagline string
	CurrencySymbol  string
	TaxLabel        string
	DefaultFooter   string
	TemplateType    string
	BankName        string
	BankAccountName string
	BankAccountNo   string
	BankBranch      string
}

type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, s *Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) Update(ctx context.Context, settings *Settings) error {
	if settings.BusinessName == "" {
		return fault.Invalidf("business name is required")
	}

	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = "$"
	}

	if settings.TaxLabel == "" {
		settings.TaxLabel = "Tax"
	}

	return s.repo.UpdateSettings(ctx, settings)
}
