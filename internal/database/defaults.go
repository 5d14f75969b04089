package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rfarias/meibooks/internal/database/repository"
)

// DefaultRules is the Receita Federal presumption table the app ships with.
// Values are editable on the fiscal-parameters screen.
var DefaultRules = []repository.MEIRule{
	{Activity: repository.ActivityCommerce, ExemptionPercent: 0.08, INSSPercent: 0.05, FixedTax: 1.00},
	{Activity: repository.ActivityIndustry, ExemptionPercent: 0.08, INSSPercent: 0.05, FixedTax: 1.00},
	{Activity: repository.ActivityServices, ExemptionPercent: 0.32, INSSPercent: 0.05, FixedTax: 5.00},
	{Activity: repository.ActivityPassengerTransport, ExemptionPercent: 0.16, INSSPercent: 0.05, FixedTax: 5.00},
	{Activity: repository.ActivityCargoTransport, ExemptionPercent: 0.08, INSSPercent: 0.12, FixedTax: 5.00},
}

// DefaultSalaryHistory covers the minimum-wage and ceiling values per year.
var DefaultSalaryHistory = []repository.SalaryConfig{
	{Year: 2020, MinWage: 1045, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1045},
	{Year: 2021, MinWage: 1100, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1100},
	{Year: 2022, MinWage: 1212, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1212},
	{Year: 2023, MinWage: 1320, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1320},
	{Year: 2024, MinWage: 1412, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1412},
	{Year: 2025, MinWage: 1518, LimitStandard: 81000, LimitTrucker: 251600, MonthlyProLabore: 1518},
}

var defaultRevenueCategories = []string{
	"Vendas Diretas", "Serviços Recorrentes", "Projetos Avulsos", "Royalties", "Outras Receitas",
}

var defaultExpenseCategories = []string{
	"Insumos e Materiais", "Aluguel", "Energia/Água", "Internet/Telefone",
	"DAS-MEI", "Material de Escritório", "Pró-labore", "Marketing", "Outras Despesas",
}

var defaultProducts = []repository.Product{
	{Name: "Consultoria Técnica", ActivityType: repository.ActivityServices},
	{Name: "Venda de Produto Acabado", ActivityType: repository.ActivityCommerce},
	{Name: "Manutenção de Equipamentos", ActivityType: repository.ActivityServices},
}

// SeedDefaults ensures the fiscal tables, category sets and starter catalog
// exist for new databases. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	fiscal := repository.NewFiscalRepo(db)

	rules, err := fiscal.Rules(ctx)
	if err == nil && len(rules) == 0 {
		for _, r := range DefaultRules {
			if err := fiscal.UpsertRule(ctx, r); err != nil {
				return err
			}
		}
	}

	history, err := fiscal.SalaryHistory(ctx)
	if err == nil && len(history) == 0 {
		for _, s := range DefaultSalaryHistory {
			if err := fiscal.UpsertSalaryConfig(ctx, s); err != nil {
				return err
			}
		}
	}

	catRepo := repository.NewCategoryRepo(db)
	if n, err := catRepo.Count(ctx); err == nil && n == 0 {
		for _, name := range defaultRevenueCategories {
			if err := catRepo.Add(ctx, repository.TypeRevenue, name); err != nil {
				return err
			}
		}
		for _, name := range defaultExpenseCategories {
			if err := catRepo.Add(ctx, repository.TypeExpense, name); err != nil {
				return err
			}
		}
	}

	prodRepo := repository.NewProductRepo(db)
	existing, err := prodRepo.List(ctx)
	if err == nil && len(existing) == 0 {
		for _, p := range defaultProducts {
			p.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+p.Name)).String()
			if err := prodRepo.Upsert(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}
