package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfarias/meibooks/internal/database/repository"
)

func openSeeded(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db))
	require.NoError(t, SeedDefaults(context.Background(), db))
	return db
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openSeeded(t)
	// running again must not duplicate anything
	require.NoError(t, SeedDefaults(ctx, db))

	fiscal := repository.NewFiscalRepo(db)
	rules, err := fiscal.Rules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 5)
	require.InDelta(t, 0.32, rules[repository.ActivityServices].ExemptionPercent, 1e-9)
	require.InDelta(t, 0.12, rules[repository.ActivityCargoTransport].INSSPercent, 1e-9)

	history, err := fiscal.SalaryHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 6)
	require.Equal(t, 2020, history[0].Year)
	require.Equal(t, 2025, history[len(history)-1].Year)

	cats := repository.NewCategoryRepo(db)
	rev, err := cats.List(ctx, repository.TypeRevenue)
	require.NoError(t, err)
	require.Equal(t, "Vendas Diretas", rev[0])
	expCats, err := cats.List(ctx, repository.TypeExpense)
	require.NoError(t, err)
	require.Len(t, expCats, 9)
}

func TestSeedDefaultsRespectsUserEdits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openSeeded(t)
	fiscal := repository.NewFiscalRepo(db)

	edited := repository.MEIRule{Activity: repository.ActivityServices, ExemptionPercent: 0.30, INSSPercent: 0.05, FixedTax: 6}
	require.NoError(t, fiscal.UpsertRule(ctx, edited))
	require.NoError(t, SeedDefaults(ctx, db))

	rules, err := fiscal.Rules(ctx)
	require.NoError(t, err)
	require.InDelta(t, 0.30, rules[repository.ActivityServices].ExemptionPercent, 1e-9)
}

func TestInitialBalancesRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openSeeded(t)
	fiscal := repository.NewFiscalRepo(db)

	require.NoError(t, fiscal.SetInitialBalance(ctx, repository.InitialBalance{Year: 2024, Cash: 150.5, Bank: 2300}))
	// overwrite is allowed
	require.NoError(t, fiscal.SetInitialBalance(ctx, repository.InitialBalance{Year: 2024, Cash: 200, Bank: 2300}))

	balances, err := fiscal.InitialBalances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.InDelta(t, 200.0, balances[2024].Cash, 1e-9)
	require.InDelta(t, 2300.0, balances[2024].Bank, 1e-9)
}

func TestRenameCategoryCascade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openSeeded(t)
	txRepo := repository.NewTransactionRepo(db)

	require.NoError(t, txRepo.Insert(ctx, repository.Transaction{
		ID: "t1", Description: "Venda", Amount: 100, Date: "2024-01-10", DueDate: "2024-01-10",
		Type: repository.TypeRevenue, Status: repository.StatusPaid,
		Account: repository.AccountBank, Subcategory: "Vendas Diretas",
	}))
	require.NoError(t, txRepo.Insert(ctx, repository.Transaction{
		ID: "t2", Description: "Compra", Amount: 40, Date: "2024-01-11", DueDate: "2024-01-11",
		Type: repository.TypeExpense, Status: repository.StatusPaid,
		Account: repository.AccountBank, Subcategory: "Aluguel",
	}))

	require.NoError(t, RenameCategory(ctx, db, repository.TypeRevenue, "Vendas Diretas", "Vendas Online"))

	rev, err := repository.NewCategoryRepo(db).List(ctx, repository.TypeRevenue)
	require.NoError(t, err)
	require.Contains(t, rev, "Vendas Online")
	require.NotContains(t, rev, "Vendas Diretas")

	got, err := txRepo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Vendas Online", got.Subcategory)

	// the other type is untouched
	got, err = txRepo.Get(ctx, "t2")
	require.NoError(t, err)
	require.Equal(t, "Aluguel", got.Subcategory)
}

func TestCompanyProfileRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openSeeded(t)
	fiscal := repository.NewFiscalRepo(db)

	empty, err := fiscal.Profile(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.CNPJ)

	p := repository.CompanyProfile{
		CivilName: "Maria da Silva",
		CPF:       "529.982.247-25",
		CNPJ:      "11.222.333/0001-81",
		LegalName: "MARIA DA SILVA 52998224725",
		City:      "Campinas",
		State:     "SP",
	}
	require.NoError(t, fiscal.SaveProfile(ctx, p))

	got, err := fiscal.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, p, got)
}
