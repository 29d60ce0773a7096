package database

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	company TEXT,
	phone TEXT,
	email TEXT,
	address TEXT,
	tax_id TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	unit_price TEXT NOT NULL DEFAULT '0',
	tax_percent TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS invoices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_number TEXT UNIQUE NOT NULL,
	customer_id INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'Draft',
	issue_date TEXT NOT NULL,
	due_date TEXT NOT NULL,
	notes TEXT,
	subtotal TEXT NOT NULL DEFAULT '0',
	tax TEXT NOT NULL DEFAULT '0',
	discount TEXT NOT NULL DEFAULT '0',
	discount_percent TEXT NOT NULL DEFAULT '0',
	advance TEXT NOT NULL DEFAULT '0',
	total TEXT NOT NULL DEFAULT '0',
	created_at TEXT NOT NULL,
	FOREIGN KEY(customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS invoice_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_id INTEGER NOT NULL,
	product_name TEXT NOT NULL,
	description TEXT,
	quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
	unit_price TEXT NOT NULL DEFAULT '0',
	tax_percent TEXT NOT NULL DEFAULT '0',
	line_total TEXT NOT NULL DEFAULT '0',
	FOREIGN KEY(invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	category_type TEXT NOT NULL CHECK (category_type IN ('Income', 'Expense'))
);

CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	account_type TEXT NOT NULL CHECK (account_type IN ('Cash', 'Bank', 'Credit')),
	balance TEXT NOT NULL DEFAULT '0',
	currency TEXT NOT NULL DEFAULT '$'
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL,
	category_id INTEGER,
	amount TEXT NOT NULL,
	transaction_type TEXT NOT NULL CHECK (transaction_type IN ('Income', 'Expense')),
	description TEXT,
	date TEXT NOT NULL,
	reference_id TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY(account_id) REFERENCES accounts(id),
	FOREIGN KEY(category_id) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	role TEXT,
	email TEXT,
	phone TEXT,
	salary TEXT NOT NULL DEFAULT '0',
	allowances TEXT NOT NULL DEFAULT '0',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payroll (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id INTEGER NOT NULL,
	base_salary TEXT NOT NULL DEFAULT '0',
	overtime_pay TEXT NOT NULL DEFAULT '0',
	bonuses TEXT NOT NULL DEFAULT '0',
	allowances TEXT NOT NULL DEFAULT '0',
	gross_salary TEXT NOT NULL DEFAULT '0',
	tax TEXT NOT NULL DEFAULT '0',
	late_penalties TEXT NOT NULL DEFAULT '0',
	absences TEXT NOT NULL DEFAULT '0',
	other_deductions TEXT NOT NULL DEFAULT '0',
	total_deductions TEXT NOT NULL DEFAULT '0',
	net_pay TEXT NOT NULL DEFAULT '0',
	pay_period_start TEXT NOT NULL,
	pay_period_end TEXT NOT NULL,
	payment_date TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Paid', 'Pending')),
	notes TEXT,
	FOREIGN KEY(employee_id) REFERENCES employees(id)
);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	business_name TEXT NOT NULL DEFAULT 'My Business',
	business_address TEXT,
	business_phone TEXT,
	business_email TEXT,
	business_tagline TEXT,
	currency_symbol TEXT NOT NULL DEFAULT '$',
	tax_label TEXT NOT NULL DEFAULT 'Tax',
	default_footer TEXT,
	template_type TEXT NOT NULL DEFAULT 'Basic',
	bank_name TEXT,
	bank_account_name TEXT,
	bank_account_no TEXT,
	bank_branch TEXT
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'User' CHECK (role IN ('Admin', 'User'))
);

CREATE TABLE IF NOT EXISTS permissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	description TEXT
);

CREATE TABLE IF NOT EXISTS user_permissions (
	user_id INTEGER NOT NULL,
	permission_id INTEGER NOT NULL,
	PRIMARY KEY (user_id, permission_id),
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(permission_id) REFERENCES permissions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	action TEXT NOT NULL,
	module TEXT NOT NULL,
	record_id TEXT,
	description TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE SET NULL
);
`

const seed = `
INSERT OR IGNORE INTO permissions (name, description) VALUES
	('manage_users', 'Administer users and permissions'),
	('view_logs', 'View system audit logs'),
	('create_invoice', 'Create new invoices'),
	('delete_invoice', 'Delete existing invoices'),
	('manage_customers', 'Create, update or delete customers'),
	('manage_products', 'Create, update or delete products'),
	('manage_settings', 'Update business settings'),
	('manage_transactions', 'Manage income and expenses'),
	('manage_payroll', 'Manage employee payroll'),
	('view_reports', 'View financial reports');

INSERT OR IGNORE INTO accounts (id, name, account_type, balance) VALUES (1, 'Cash', 'Cash', '0');
INSERT OR IGNORE INTO accounts (id, name, account_type, balance) VALUES (2, 'Bank Account', 'Bank', '0');

INSERT OR IGNORE INTO categories (id, name, category_type) VALUES
	(1, 'Sales', 'Income'),
	(2, 'Office Supplies', 'Expense'),
	(3, 'Rent', 'Expense'),
	(4, 'Utilities', 'Expense'),
	(5, 'Salary', 'Expense'),
	(6, 'Other', 'Expense');

INSERT OR IGNORE INTO settings (id, business_name) VALUES (1, 'My Business');
`

// Migrate creates the schema and seed rows. Every statement is idempotent, so
// it runs unconditionally on startup.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if _, err := db.Exec(seed); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	return nil
}
