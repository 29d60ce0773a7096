package store

import (
	"context"
	"database/sql"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	var out settings.Settings

	var (
		address, phone, email, tagline, footer               sql.NullString
		bankName, bankAccountName, bankAccountNo, bankBranch sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT business_name, business_address, business_phone, business_email,
			business_tagline, currency_symbol, tax_label, default_footer, template_type,
			bank_name, bank_account_name, bank_account_no, bank_branch
		FROM settings WHERE id = 1`).Scan(
		&out.BusinessName, &address, &phone, &email, &tagline,
		&out.CurrencySymbol, &out.TaxLabel, &footer, &out.TemplateType,
		&bankName, &bankAccountName, &bankAccountNo, &bankBranch,
	)
	if err != nil {
		return nil, fault.Persistence("getting settings", err)
	}

	out.BusinessAddress = address.String
	out.BusinessPhone = phone.String
	out.BusinessEmail = email.String
	out.BusinessTagline = tagline.String
	out.DefaultFooter = footer.String
	out.BankName = bankName.String
	out.BankAccountName = bankAccountName.String
	out.BankAccountNo = bankAccountNo.String
	out.BankBranch = bankBranch.String

	return &out, nil
}

func (s *Store) UpdateSettings(ctx context.Context, in *settings.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE settings SET business_name = ?, business_address = ?, business_phone = ?,
			business_email = ?, business_tagline = ?, currency_symbol = ?, tax_label = ?,
			default_footer = ?, template_type = ?, bank_name = ?, bank_account_name = ?,
			bank_account_no = ?, bank_branch = ?
		WHERE id = 1`,
		in.BusinessName, in.BusinessAddress, in.BusinessPhone, in.BusinessEmail,
		in.BusinessTagline, in.CurrencySymbol, in.TaxLabel, in.DefaultFooter,
		in.TemplateType, in.BankName, in.BankAccountName, in.BankAccountNo, in.BankBranch,
	)
	if err != nil {
		return fault.Persistence("updating settings", err)
	}

	return nil
}
