package fiscal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfarias/meibooks/internal/database/repository"
)

func defaultRules() map[repository.ActivityType]repository.MEIRule {
	return map[repository.ActivityType]repository.MEIRule{
		repository.ActivityCommerce:           {Activity: repository.ActivityCommerce, ExemptionPercent: 0.08, INSSPercent: 0.05, FixedTax: 1},
		repository.ActivityIndustry:           {Activity: repository.ActivityIndustry, ExemptionPercent: 0.08, INSSPercent: 0.05, FixedTax: 1},
		repository.ActivityServices:           {Activity: repository.ActivityServices, ExemptionPercent: 0.32, INSSPercent: 0.05, FixedTax: 5},
		repository.ActivityPassengerTransport: {Activity: repository.ActivityPassengerTransport, ExemptionPercent: 0.16, INSSPercent: 0.05, FixedTax: 5},
		repository.ActivityCargoTransport:     {Activity: repository.ActivityCargoTransport, ExemptionPercent: 0.08, INSSPercent: 0.12, FixedTax: 5},
	}
}

func defaultHistory() []repository.SalaryConfig {
	return []repository.SalaryConfig{
		{Year: 2023, MinWage: 1320, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1320},
		{Year: 2024, MinWage: 1412, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1412},
	}
}

func rev(amount float64, act repository.ActivityType, status repository.PaymentStatus, account repository.Account) repository.Transaction {
	return repository.Transaction{
		ID: "r", Description: "revenue", Amount: amount, Date: "2024-03-10", DueDate: "2024-03-10",
		Type: repository.TypeRevenue, Status: status, Account: account, ActivityType: &act,
	}
}

func exp(amount float64, status repository.PaymentStatus, account repository.Account) repository.Transaction {
	return repository.Transaction{
		ID: "e", Description: "expense", Amount: amount, Date: "2024-04-02", DueDate: "2024-04-02",
		Type: repository.TypeExpense, Status: status, Account: account,
	}
}

func TestComputeMetricsExemptionSplit(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		rev(1000, repository.ActivityServices, repository.StatusPaid, repository.AccountBank),
	}
	m := ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.InDelta(t, 1000.0, m.TotalRevenue, 1e-9)
	require.InDelta(t, 320.0, m.ExemptProfit, 1e-9)
	require.InDelta(t, 680.0, m.NetRevenue, 1e-9)
	require.InDelta(t, 680.0, m.TaxableProfit, 1e-9)

	txs = append(txs, exp(200, repository.StatusPending, repository.AccountBank))
	m = ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.InDelta(t, 200.0, m.TotalExpense, 1e-9)
	require.InDelta(t, 480.0, m.TaxableProfit, 1e-9)
}

func TestComputeMetricsFloorsNeverNegative(t *testing.T) {
	t.Parallel()

	// expenses far above revenue
	txs := []repository.Transaction{
		rev(100, repository.ActivityServices, repository.StatusPending, repository.AccountBank),
		exp(5000, repository.StatusPending, repository.AccountBank),
	}
	m := ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.GreaterOrEqual(t, m.NetRevenue, 0.0)
	require.GreaterOrEqual(t, m.TaxableProfit, 0.0)

	// exemption above 100% from a misconfigured rule still floors at zero
	rules := defaultRules()
	r := rules[repository.ActivityServices]
	r.ExemptionPercent = 1.5
	rules[repository.ActivityServices] = r
	m = ComputeMetrics(txs, rules, defaultHistory(), nil, 2024)
	require.Equal(t, 0.0, m.NetRevenue)
	require.Equal(t, 0.0, m.TaxableProfit)
}

func TestComputeMetricsOrderIndependent(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		rev(600, repository.ActivityServices, repository.StatusPaid, repository.AccountCash),
		exp(150, repository.StatusPaid, repository.AccountCash),
		rev(400, repository.ActivityCommerce, repository.StatusPaid, repository.AccountBank),
	}
	reversed := []repository.Transaction{txs[2], txs[1], txs[0]}

	a := ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	b := ComputeMetrics(reversed, defaultRules(), defaultHistory(), nil, 2024)
	require.Equal(t, a, b)
	require.InDelta(t, 1000.0, a.TotalRevenue, 1e-9)
	require.InDelta(t, 150.0, a.TotalExpense, 1e-9)
}

func TestComputeMetricsBalances(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		rev(300, repository.ActivityServices, repository.StatusPaid, repository.AccountCash),
		exp(120, repository.StatusPaid, repository.AccountCash),
		rev(900, repository.ActivityServices, repository.StatusPaid, repository.AccountBank),
		exp(50, repository.StatusPaid, repository.AccountBank),
		// pending never moves balances
		rev(10000, repository.ActivityServices, repository.StatusPending, repository.AccountBank),
		exp(10000, repository.StatusPending, repository.AccountCash),
	}
	balances := map[int]repository.InitialBalance{
		2024: {Year: 2024, Cash: 500, Bank: 1000},
	}
	m := ComputeMetrics(txs, defaultRules(), defaultHistory(), balances, 2024)
	require.InDelta(t, 180.0, m.CashMovement, 1e-9)
	require.InDelta(t, 850.0, m.BankMovement, 1e-9)
	require.InDelta(t, 680.0, m.CashBalance, 1e-9)
	require.InDelta(t, 1850.0, m.BankBalance, 1e-9)

	// absent year falls back to zero opening balances
	m = ComputeMetrics(txs, defaultRules(), defaultHistory(), balances, 2023)
	require.Equal(t, 0.0, m.InitCash)
	require.Equal(t, 0.0, m.InitBank)
}

func TestDominantActivity(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		rev(600, repository.ActivityServices, repository.StatusPaid, repository.AccountBank),
		rev(400, repository.ActivityCommerce, repository.StatusPaid, repository.AccountBank),
	}
	m := ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.Equal(t, repository.ActivityServices, m.DominantActivity)
	require.InDelta(t, 32.0, m.DominantExemptionPercent, 1e-9)

	// no revenue at all defaults to services
	m = ComputeMetrics(nil, defaultRules(), defaultHistory(), nil, 2024)
	require.Equal(t, repository.ActivityServices, m.DominantActivity)

	// equal totals break ties by declaration order
	txs = []repository.Transaction{
		rev(500, repository.ActivityCargoTransport, repository.StatusPaid, repository.AccountBank),
		rev(500, repository.ActivityCommerce, repository.StatusPaid, repository.AccountBank),
	}
	m = ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.Equal(t, repository.ActivityCommerce, m.DominantActivity)
}

func TestComputeMetricsDASAndCeiling(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		rev(90000, repository.ActivityServices, repository.StatusPaid, repository.AccountBank),
	}
	m := ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.InDelta(t, 1412*0.05+5, m.DASValue, 1e-9)
	require.InDelta(t, 81000.0, m.Ceiling, 1e-9)
	require.InDelta(t, 111.1, m.CeilingUsagePercent, 0.05)

	// trucker ceiling applies when cargo transport dominates
	txs = []repository.Transaction{
		rev(90000, repository.ActivityCargoTransport, repository.StatusPaid, repository.AccountBank),
	}
	m = ComputeMetrics(txs, defaultRules(), defaultHistory(), nil, 2024)
	require.InDelta(t, 251600.0, m.Ceiling, 1e-9)
	require.InDelta(t, 1412*0.12+5, m.DASValue, 1e-9)
}

func TestComputeMetricsMissingConfigDegrades(t *testing.T) {
	t.Parallel()

	act := repository.ActivityType("weird")
	txs := []repository.Transaction{
		{ID: "x", Amount: 1000, Date: "2024-01-01", Type: repository.TypeRevenue, Status: repository.StatusPaid, Account: repository.AccountBank, ActivityType: &act},
	}
	m := ComputeMetrics(txs, map[repository.ActivityType]repository.MEIRule{}, nil, nil, 2024)
	require.InDelta(t, 1000.0, m.TotalRevenue, 1e-9)
	require.Equal(t, 0.0, m.ExemptProfit)
	require.Equal(t, 0.0, m.DASValue)
	require.Equal(t, 0.0, m.CeilingUsagePercent)
}

func TestResolveSalaryConfig(t *testing.T) {
	t.Parallel()

	history := defaultHistory()
	require.Equal(t, 2023, ResolveSalaryConfig(history, 2023).Year)
	// unknown year falls back to the last entry, not the closest
	require.Equal(t, 2024, ResolveSalaryConfig(history, 2019).Year)
	require.Equal(t, 2024, ResolveSalaryConfig(history, 2031).Year)
	require.Equal(t, 2018, ResolveSalaryConfig(nil, 2018).Year)
}

func TestResolveActivity(t *testing.T) {
	t.Parallel()

	require.Equal(t, repository.ActivityServices, ResolveActivity(repository.Transaction{}))
	act := repository.ActivityIndustry
	require.Equal(t, repository.ActivityIndustry, ResolveActivity(repository.Transaction{ActivityType: &act}))
}

func TestFilterYear(t *testing.T) {
	t.Parallel()

	txs := []repository.Transaction{
		{ID: "a", Date: "2024-01-05"},
		{ID: "b", Date: "2023-12-31"},
		{ID: "c", Date: "2024-11-20"},
		{ID: "d", Date: "garbage"},
	}
	got := FilterYear(txs, 2024)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "c", got[1].ID)
}
