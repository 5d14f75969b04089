package repository

import (
	"context"
	"database/sql"
	"encoding/json"
)

// FiscalRepo handles the configuration tables: per-activity MEI rules, the
// yearly salary/ceiling history, opening balances and the company profile.
type FiscalRepo struct {
	db *sql.DB
}

func NewFiscalRepo(db *sql.DB) *FiscalRepo { return &FiscalRepo{db: db} }

func (r *FiscalRepo) UpsertRule(ctx context.Context, rule MEIRule) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO mei_rules(activity, exemption_percent, inss_percent, fixed_tax)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(activity) DO UPDATE SET
	 exemption_percent=excluded.exemption_percent,
	 inss_percent=excluded.inss_percent,
	 fixed_tax=excluded.fixed_tax;
	`, rule.Activity, rule.ExemptionPercent, rule.INSSPercent, rule.FixedTax)
	return err
}

// Rules returns the rule table keyed by activity, the shape the metrics
// engine consumes.
func (r *FiscalRepo) Rules(ctx context.Context) (map[ActivityType]MEIRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT activity, exemption_percent, inss_percent, fixed_tax FROM mei_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[ActivityType]MEIRule)
	for rows.Next() {
		var rule MEIRule
		if err := rows.Scan(&rule.Activity, &rule.ExemptionPercent, &rule.INSSPercent, &rule.FixedTax); err != nil {
			return nil, err
		}
		out[rule.Activity] = rule
	}
	return out, rows.Err()
}

func (r *FiscalRepo) UpsertSalaryConfig(ctx context.Context, s SalaryConfig) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO salary_configs(year, min_wage, limit_standard, limit_trucker, monthly_pro_labore)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(year) DO UPDATE SET
	 min_wage=excluded.min_wage,
	 limit_standard=excluded.limit_standard,
	 limit_trucker=excluded.limit_trucker,
	 monthly_pro_labore=excluded.monthly_pro_labore;
	`, s.Year, s.MinWage, s.LimitStandard, s.LimitTrucker, s.MonthlyProLabore)
	return err
}

// SalaryHistory returns the config table ascending by year, the order the
// fallback resolution relies on.
func (r *FiscalRepo) SalaryHistory(ctx context.Context) ([]SalaryConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT year, min_wage, limit_standard, limit_trucker, monthly_pro_labore
	FROM salary_configs ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SalaryConfig
	for rows.Next() {
		var s SalaryConfig
		if err := rows.Scan(&s.Year, &s.MinWage, &s.LimitStandard, &s.LimitTrucker, &s.MonthlyProLabore); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetInitialBalance overwrites the opening balances for a year.
func (r *FiscalRepo) SetInitialBalance(ctx context.Context, b InitialBalance) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO initial_balances(year, cash, bank)
	VALUES (?, ?, ?)
	ON CONFLICT(year) DO UPDATE SET cash=excluded.cash, bank=excluded.bank;
	`, b.Year, b.Cash, b.Bank)
	return err
}

func (r *FiscalRepo) InitialBalances(ctx context.Context) (map[int]InitialBalance, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT year, cash, bank FROM initial_balances`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int]InitialBalance)
	for rows.Next() {
		var b InitialBalance
		if err := rows.Scan(&b.Year, &b.Cash, &b.Bank); err != nil {
			return nil, err
		}
		out[b.Year] = b
	}
	return out, rows.Err()
}

// SaveProfile stores the company profile as a JSON settings entry.
func (r *FiscalRepo) SaveProfile(ctx context.Context, p CompanyProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO settings(key, value) VALUES ('company_profile', ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value;
	`, string(data))
	return err
}

// Profile loads the company profile, returning a zero value when none has
// been saved yet.
func (r *FiscalRepo) Profile(ctx context.Context) (CompanyProfile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'company_profile'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return CompanyProfile{}, nil
	}
	if err != nil {
		return CompanyProfile{}, err
	}
	var p CompanyProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return CompanyProfile{}, err
	}
	return p, nil
}
