package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rfarias/meibooks/internal/config"
	"github.com/rfarias/meibooks/internal/database"
	"github.com/rfarias/meibooks/internal/database/repository"
	"github.com/rfarias/meibooks/internal/service"
	"github.com/rfarias/meibooks/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	txRepo := repository.NewTransactionRepo(db)
	prodRepo := repository.NewProductRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	fiscalRepo := repository.NewFiscalRepo(db)

	// services
	ledger := &service.Ledger{Transactions: txRepo, Products: prodRepo, Categories: catRepo}
	importer := service.NewImporter()

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{DB: db, Transactions: txRepo, Products: prodRepo, Categories: catRepo, Fiscal: fiscalRepo},
		tui.Services{Ledger: ledger, Importer: importer},
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
