// Package fiscal derives the year-scoped financial and tax figures shown on
// the dashboard from the ledger plus the configured MEI tables. Everything
// here is a pure function of its inputs.
package fiscal

import (
	"strconv"
	"strings"

	"github.com/rfarias/meibooks/internal/database/repository"
)

// Metrics is the flat record consumed read-only by presentation.
type Metrics struct {
	TotalRevenue  float64
	TotalExpense  float64
	ExemptProfit  float64
	NetRevenue    float64
	TaxableProfit float64

	InitCash     float64
	InitBank     float64
	CashMovement float64
	BankMovement float64
	CashBalance  float64
	BankBalance  float64

	DominantActivity         repository.ActivityType
	DominantExemptionPercent float64
	DASValue                 float64
	Ceiling                  float64
	CeilingUsagePercent      float64
}

// ResolveActivity returns the transaction's activity classification,
// defaulting to services when none is set.
func ResolveActivity(t repository.Transaction) repository.ActivityType {
	if t.ActivityType != nil {
		return *t.ActivityType
	}
	return repository.ActivityServices
}

// ResolveSalaryConfig picks the config for year, falling back to the last
// entry of the year-ascending history. This is deliberately "last in table
// order", not a closest-year search, so out-of-range years resolve to the
// newest configured parameters.
func ResolveSalaryConfig(history []repository.SalaryConfig, year int) repository.SalaryConfig {
	for _, s := range history {
		if s.Year == year {
			return s
		}
	}
	if len(history) == 0 {
		return repository.SalaryConfig{Year: year}
	}
	return history[len(history)-1]
}

// FilterYear keeps the transactions whose date falls in the given year.
func FilterYear(txs []repository.Transaction, year int) []repository.Transaction {
	out := make([]repository.Transaction, 0, len(txs))
	for _, t := range txs {
		if dateYear(t.Date) == year {
			out = append(out, t)
		}
	}
	return out
}

func dateYear(iso string) int {
	head, _, _ := strings.Cut(iso, "-")
	y, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return y
}

// ComputeMetrics derives all metrics for one fiscal year. Missing rules,
// config entries or balances degrade to zero-valued defaults; a bad activity
// on one transaction must never blank the whole dashboard.
func ComputeMetrics(
	yearTxs []repository.Transaction,
	rules map[repository.ActivityType]repository.MEIRule,
	history []repository.SalaryConfig,
	balances map[int]repository.InitialBalance,
	year int,
) Metrics {
	var m Metrics

	revenueByActivity := make(map[repository.ActivityType]float64)
	for _, t := range yearTxs {
		switch t.Type {
		case repository.TypeRevenue:
			m.TotalRevenue += t.Amount
			act := ResolveActivity(t)
			m.ExemptProfit += t.Amount * rules[act].ExemptionPercent
			revenueByActivity[act] += t.Amount
		case repository.TypeExpense:
			m.TotalExpense += t.Amount
		}

		if t.Status == repository.StatusPaid {
			signed := t.Amount
			if t.Type == repository.TypeExpense {
				signed = -t.Amount
			}
			switch t.Account {
			case repository.AccountCash:
				m.CashMovement += signed
			case repository.AccountBank:
				m.BankMovement += signed
			}
		}
	}

	m.NetRevenue = m.TotalRevenue - m.ExemptProfit
	if m.NetRevenue < 0 {
		m.NetRevenue = 0
	}
	m.TaxableProfit = m.NetRevenue - m.TotalExpense
	if m.TaxableProfit < 0 {
		m.TaxableProfit = 0
	}

	if b, ok := balances[year]; ok {
		m.InitCash = b.Cash
		m.InitBank = b.Bank
	}
	m.CashBalance = m.InitCash + m.CashMovement
	m.BankBalance = m.InitBank + m.BankMovement

	m.DominantActivity = dominantActivity(revenueByActivity)
	dominantRule := rules[m.DominantActivity]
	m.DominantExemptionPercent = dominantRule.ExemptionPercent * 100

	salary := ResolveSalaryConfig(history, year)
	m.DASValue = salary.MinWage*dominantRule.INSSPercent + dominantRule.FixedTax

	m.Ceiling = salary.LimitStandard
	if m.DominantActivity == repository.ActivityCargoTransport {
		m.Ceiling = salary.LimitTrucker
	}
	if m.Ceiling > 0 {
		m.CeilingUsagePercent = m.TotalRevenue / m.Ceiling * 100
	}

	return m
}

// dominantActivity returns the activity with the highest summed revenue,
// ties broken by enum declaration order. Services when there is no revenue.
func dominantActivity(revenue map[repository.ActivityType]float64) repository.ActivityType {
	if len(revenue) == 0 {
		return repository.ActivityServices
	}
	best := repository.ActivityServices
	bestTotal := -1.0
	for _, act := range repository.ActivityTypes() {
		if total, ok := revenue[act]; ok && total > bestTotal {
			best = act
			bestTotal = total
		}
	}
	return best
}
