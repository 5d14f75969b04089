package tui

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfarias/meibooks/internal/brdoc"
	"github.com/rfarias/meibooks/internal/config"
	"github.com/rfarias/meibooks/internal/database"
	"github.com/rfarias/meibooks/internal/database/repository"
	"github.com/rfarias/meibooks/internal/fiscal"
	"github.com/rfarias/meibooks/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config

	state appState
	modal modalState
	year  int

	yearTxs  []repository.Transaction
	pending  []repository.Transaction
	rules    map[repository.ActivityType]repository.MEIRule
	history  []repository.SalaryConfig
	balances map[int]repository.InitialBalance
	profile  repository.CompanyProfile
	revCats  []string
	expCats  []string

	txCursor       int
	pendingCursor  int
	recCursor      int
	settingsCursor int
	settingsType   repository.TransactionType

	inputBuffer string
	editingTxID string
	importPath  string
	status      string
	dateFormat  string
	currency    string
}

type Repos struct {
	DB           *sql.DB
	Transactions *repository.TransactionRepo
	Products     *repository.ProductRepo
	Categories   *repository.CategoryRepo
	Fiscal       *repository.FiscalRepo
}

type Services struct {
	Ledger     *service.Ledger
	Importer   *service.Importer
	Reconciler service.Reconciler
}

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewTransactions appState = "transactions"
	viewPending      appState = "pending"
	viewReconcile    appState = "reconcile"
	viewImport       appState = "import"
	viewFiscal       appState = "fiscal"
	viewSettings     appState = "settings"
)

type modalState string

const (
	modalNone      modalState = ""
	modalNewTx     modalState = "newTx"
	modalEditTx    modalState = "editTx"
	modalLiquidate modalState = "liquidate"
	modalNewCat    modalState = "newCategory"
	modalRenameCat modalState = "renameCategory"
	modalDeleteTx  modalState = "deleteTx"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services) *App {
	year := cfg.UI.FiscalYear
	if year == 0 {
		year = time.Now().Year()
	}
	dateFormat := cfg.UI.DateFormat
	if dateFormat == "" {
		dateFormat = "02/01/2006"
	}
	currency := cfg.UI.CurrencySymbol
	if currency == "" {
		currency = "R$"
	}
	return &App{
		ctx:          ctx,
		repos:        repos,
		services:     services,
		cfg:          cfg,
		year:         year,
		settingsType: repository.TypeRevenue,
		importPath:   "extrato.csv",
		dateFormat:   dateFormat,
		currency:     currency,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadYear(), a.loadCategories(), a.loadFiscal())
}

func (a *App) loadYear() tea.Cmd {
	year := a.year
	return func() tea.Msg {
		txs, err := a.repos.Transactions.ListYear(a.ctx, year)
		if err != nil {
			return errMsg{err}
		}
		return yearTxsMsg(txs)
	}
}

func (a *App) loadCategories() tea.Cmd {
	return func() tea.Msg {
		rev, err := a.repos.Categories.List(a.ctx, repository.TypeRevenue)
		if err != nil {
			return errMsg{err}
		}
		exp, err := a.repos.Categories.List(a.ctx, repository.TypeExpense)
		if err != nil {
			return errMsg{err}
		}
		return categoriesMsg{revenue: rev, expense: exp}
	}
}

func (a *App) loadFiscal() tea.Cmd {
	return func() tea.Msg {
		rules, err := a.repos.Fiscal.Rules(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		history, err := a.repos.Fiscal.SalaryHistory(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		balances, err := a.repos.Fiscal.InitialBalances(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		profile, err := a.repos.Fiscal.Profile(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return fiscalMsg{rules: rules, history: history, balances: balances, profile: profile}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewImport {
			return a.handleImportKey(m)
		}
		if a.state == viewSettings {
			return a.handleSettingsKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "d":
			a.state = viewDashboard
		case "t":
			a.state = viewTransactions
		case "p":
			a.state = viewPending
		case "r":
			a.state = viewReconcile
		case "f":
			a.state = viewFiscal
		case "i":
			a.state = viewImport
			a.status = ""
		case "s":
			a.state = viewSettings
			a.status = ""
		case "[":
			a.year--
			return a, a.loadYear()
		case "]":
			a.year++
			return a, a.loadYear()
		case "up", "k":
			a.moveCursor(-1)
		case "down", "j":
			a.moveCursor(1)
		case "n":
			if a.state == viewTransactions {
				a.modal = modalNewTx
				a.inputBuffer = ""
			}
		case "enter":
			if a.state == viewTransactions && len(a.yearTxs) > 0 {
				tx := a.yearTxs[a.txCursor]
				a.modal = modalEditTx
				a.editingTxID = tx.ID
				a.inputBuffer = quickAddText(tx)
			}
		case "backspace", "delete":
			if a.state == viewTransactions && len(a.yearTxs) > 0 {
				a.modal = modalDeleteTx
				a.editingTxID = a.yearTxs[a.txCursor].ID
			}
		case "l":
			if a.state == viewPending && len(a.pending) > 0 {
				a.modal = modalLiquidate
				a.editingTxID = a.pending[a.pendingCursor].ID
				a.inputBuffer = time.Now().Format("2006-01-02") + ";Pix"
			}
		case "c":
			if a.state == viewReconcile {
				rows := a.reconcileRows()
				if a.recCursor < len(rows) && rows[a.recCursor].Matched && !rows[a.recCursor].Confirmed {
					a.services.Importer.Confirm(rows[a.recCursor].Record.ID)
					a.status = "conciliado"
				}
			}
		case "y":
			if a.state == viewReconcile {
				rows := a.reconcileRows()
				if a.recCursor < len(rows) && !rows[a.recCursor].Matched && !rows[a.recCursor].Confirmed {
					rec := rows[a.recCursor].Record
					t := a.services.Reconciler.QuickLaunch(rec, a.revCats, a.expCats)
					return a, a.quickLaunchCmd(rec.ID, t)
				}
			}
		case "x":
			if a.state == viewReconcile {
				a.services.Importer.Clear()
				a.recCursor = 0
				a.status = "sessão de importação descartada"
			}
		}
	case yearTxsMsg:
		a.yearTxs = []repository.Transaction(m)
		a.pending = a.pending[:0]
		for _, t := range a.yearTxs {
			if t.Status == repository.StatusPending {
				a.pending = append(a.pending, t)
			}
		}
		if a.txCursor >= len(a.yearTxs) {
			a.txCursor = 0
		}
		if a.pendingCursor >= len(a.pending) {
			a.pendingCursor = 0
		}
	case categoriesMsg:
		a.revCats, a.expCats = m.revenue, m.expense
		if a.settingsCursor >= len(a.settingsCats()) {
			a.settingsCursor = 0
		}
	case fiscalMsg:
		a.rules, a.history, a.balances, a.profile = m.rules, m.history, m.balances, m.profile
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "erro: " + m.Error()
	case statementLoadedMsg:
		records := a.services.Importer.Import(string(m))
		a.status = fmt.Sprintf("%d lançamentos importados", len(records))
		a.state = viewReconcile
		a.recCursor = 0
	case quickLaunchedMsg:
		a.services.Importer.Confirm(string(m))
		a.status = "lançamento rápido criado"
		return a, a.loadYear()
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	clamp := func(cur *int, n int) {
		*cur += delta
		if *cur < 0 {
			*cur = 0
		}
		if n > 0 && *cur > n-1 {
			*cur = n - 1
		}
		if n == 0 {
			*cur = 0
		}
	}
	switch a.state {
	case viewTransactions:
		clamp(&a.txCursor, len(a.yearTxs))
	case viewPending:
		clamp(&a.pendingCursor, len(a.pending))
	case viewReconcile:
		clamp(&a.recCursor, len(a.services.Importer.Records()))
	}
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewTransactions:
		body = a.renderTransactions()
	case viewPending:
		body = a.renderPending()
	case viewReconcile:
		body = a.renderReconcile()
	case viewImport:
		body = a.renderImport()
	case viewFiscal:
		body = a.renderFiscal()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

// commands

func (a *App) createTxCmd(t repository.Transaction) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.services.Ledger.Create(a.ctx, t); err != nil {
				return errMsg{err}
			}
			return statusMsg("lançamento criado")
		},
		a.loadYear(),
	)
}

func (a *App) updateTxCmd(id string, t repository.Transaction) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Update(a.ctx, id, t); err != nil {
				return errMsg{err}
			}
			return statusMsg("lançamento atualizado")
		},
		a.loadYear(),
	)
}

func (a *App) deleteTxCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("lançamento excluído")
		},
		a.loadYear(),
	)
}

func (a *App) liquidateCmd(id, date, method string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Liquidate(a.ctx, id, date, method); err != nil {
				return errMsg{err}
			}
			return statusMsg("título liquidado")
		},
		a.loadYear(),
	)
}

// quickLaunchCmd only runs the database insert; the transaction is built and
// the record confirmed on the program loop, where the import session lives.
func (a *App) quickLaunchCmd(recordID string, t repository.Transaction) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Ledger.Create(a.ctx, t); err != nil {
			return errMsg{err}
		}
		return quickLaunchedMsg(recordID)
	}
}

// importCmd reads the file off the loop; parsing into the session happens in
// Update when statementLoadedMsg lands, keeping Importer single-threaded.
func (a *App) importCmd(path string) tea.Cmd {
	abs := path
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
	}
	a.status = "importando..."
	return func() tea.Msg {
		data, err := os.ReadFile(abs)
		if err != nil {
			return errMsg{fmt.Errorf("abrir %s: %w", abs, err)}
		}
		return statementLoadedMsg(data)
	}
}

// saveConfigCmd persists the active fiscal year and display preferences so
// the next run opens on the same exercise.
func (a *App) saveConfigCmd() tea.Cmd {
	cfg := a.cfg
	cfg.UI.FiscalYear = a.year
	cfg.UI.DateFormat = a.dateFormat
	cfg.UI.CurrencySymbol = a.currency
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("preferências gravadas")
	}
}

func (a *App) newCategoryCmd(typ repository.TransactionType, name string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Categories.Add(a.ctx, typ, strings.TrimSpace(name)); err != nil {
				return errMsg{err}
			}
			return statusMsg("categoria criada")
		},
		a.loadCategories(),
	)
}

// renameCategoryCmd renames the set entry and cascades into every
// transaction of that type in one sqlite transaction, so historical rows
// keep a valid label.
func (a *App) renameCategoryCmd(typ repository.TransactionType, oldName, newName string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := database.RenameCategory(a.ctx, a.repos.DB, typ, oldName, strings.TrimSpace(newName)); err != nil {
				return errMsg{err}
			}
			return statusMsg("categoria renomeada")
		},
		a.loadCategories(),
		a.loadYear(),
	)
}

func (a *App) deleteCategoryCmd(typ repository.TransactionType, name string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Categories.Remove(a.ctx, typ, name); err != nil {
				return errMsg{err}
			}
			return statusMsg("categoria removida")
		},
		a.loadCategories(),
	)
}

// key handlers

func (a *App) handleImportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewDashboard
		a.status = ""
	case tea.KeyEnter:
		path := strings.TrimSpace(a.importPath)
		if path == "" {
			a.status = "informe o caminho do extrato"
			return a, nil
		}
		return a, a.importCmd(path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.importPath) > 0 {
			a.importPath = a.importPath[:len(a.importPath)-1]
		}
	case tea.KeySpace:
		a.importPath += " "
	case tea.KeyRunes:
		a.importPath += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := a.settingsCats()
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewDashboard
		a.status = ""
		return a, nil
	case "tab":
		if a.settingsType == repository.TypeRevenue {
			a.settingsType = repository.TypeExpense
		} else {
			a.settingsType = repository.TypeRevenue
		}
		a.settingsCursor = 0
	case "up", "k":
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "down", "j":
		if a.settingsCursor < len(cats)-1 {
			a.settingsCursor++
		}
	case "n":
		a.modal = modalNewCat
		a.inputBuffer = ""
		return a, nil
	case "g":
		return a, a.saveConfigCmd()
	case "enter":
		if len(cats) == 0 {
			a.status = "nenhuma categoria para renomear"
			return a, nil
		}
		a.modal = modalRenameCat
		a.inputBuffer = cats[a.settingsCursor]
		return a, nil
	case "backspace", "delete":
		if len(cats) == 0 {
			return a, nil
		}
		return a, a.deleteCategoryCmd(a.settingsType, cats[a.settingsCursor])
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalDeleteTx {
		switch m.String() {
		case "y", "Y":
			id := a.editingTxID
			a.modal = modalNone
			return a, a.deleteTxCmd(id)
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.inputBuffer = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(a.inputBuffer)
		if text == "" {
			a.status = "informe um valor"
			return a, nil
		}
		mode := a.modal
		a.modal = modalNone
		a.inputBuffer = ""
		switch mode {
		case modalNewTx:
			t, err := parseQuickAdd(text)
			if err != nil {
				a.status = "erro: " + err.Error()
				return a, nil
			}
			return a, a.createTxCmd(t)
		case modalEditTx:
			t, err := parseQuickAdd(text)
			if err != nil {
				a.status = "erro: " + err.Error()
				return a, nil
			}
			return a, a.updateTxCmd(a.editingTxID, t)
		case modalLiquidate:
			date, method, ok := strings.Cut(text, ";")
			if !ok || strings.TrimSpace(method) == "" {
				method = "Pix"
			}
			return a, a.liquidateCmd(a.editingTxID, strings.TrimSpace(date), strings.TrimSpace(method))
		case modalNewCat:
			return a, a.newCategoryCmd(a.settingsType, text)
		case modalRenameCat:
			cats := a.settingsCats()
			if a.settingsCursor >= len(cats) {
				return a, nil
			}
			return a, a.renameCategoryCmd(a.settingsType, cats[a.settingsCursor], text)
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
	case tea.KeySpace:
		a.inputBuffer += " "
	case tea.KeyRunes:
		a.inputBuffer += string(m.Runes)
	}
	return a, nil
}

// helpers

func (a *App) metrics() fiscal.Metrics {
	return fiscal.ComputeMetrics(a.yearTxs, a.rules, a.history, a.balances, a.year)
}

func (a *App) reconcileRows() []service.ReconciliationRow {
	return a.services.Reconciler.Match(a.yearTxs, a.services.Importer.Records(), a.services.Importer.Confirmed())
}

func (a *App) settingsCats() []string {
	if a.settingsType == repository.TypeExpense {
		return a.expCats
	}
	return a.revCats
}

func (a *App) money(v float64) string {
	return brdoc.FormatCurrency(a.currency, v)
}

func (a *App) displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format(a.dateFormat)
}

// parseQuickAdd builds a transaction from "data;descrição;valor;categoria".
// A negative value means despesa; the optional 5th field is conta
// (caixa/banco) and the 6th "pendente" keeps the title open.
func parseQuickAdd(text string) (repository.Transaction, error) {
	parts := strings.Split(text, ";")
	if len(parts) < 3 {
		return repository.Transaction{}, fmt.Errorf("use data;descrição;valor[;categoria][;conta][;pendente]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	raw := strings.ReplaceAll(strings.ReplaceAll(parts[2], ".", ""), ",", ".")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return repository.Transaction{}, fmt.Errorf("valor inválido: %s", parts[2])
	}
	t := repository.Transaction{
		Description: parts[1],
		Date:        parts[0],
		Type:        repository.TypeRevenue,
		Status:      repository.StatusPaid,
		Account:     repository.AccountBank,
	}
	if amount < 0 {
		t.Type = repository.TypeExpense
		amount = -amount
	}
	t.Amount = amount
	if len(parts) > 3 {
		t.Subcategory = parts[3]
	}
	if len(parts) > 4 && strings.EqualFold(parts[4], "caixa") {
		t.Account = repository.AccountCash
	}
	if len(parts) > 5 && strings.EqualFold(parts[5], "pendente") {
		t.Status = repository.StatusPending
	}
	return t, nil
}

func quickAddText(t repository.Transaction) string {
	amount := strings.ReplaceAll(strconv.FormatFloat(t.Amount, 'f', 2, 64), ".", ",")
	if t.Type == repository.TypeExpense {
		amount = "-" + amount
	}
	out := fmt.Sprintf("%s;%s;%s;%s", t.Date, t.Description, amount, t.Subcategory)
	if t.Account == repository.AccountCash {
		out += ";caixa"
	} else {
		out += ";banco"
	}
	if t.Status == repository.StatusPending {
		out += ";pendente"
	}
	return out
}

// messages

type yearTxsMsg []repository.Transaction

type categoriesMsg struct {
	revenue []string
	expense []string
}

type fiscalMsg struct {
	rules    map[repository.ActivityType]repository.MEIRule
	history  []repository.SalaryConfig
	balances map[int]repository.InitialBalance
	profile  repository.CompanyProfile
}

type statusMsg string

type errMsg struct{ error }

type statementLoadedMsg []byte

type quickLaunchedMsg string

// styles
var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

var activityLabels = map[repository.ActivityType]string{
	repository.ActivityCommerce:           "Comércio",
	repository.ActivityIndustry:           "Indústria",
	repository.ActivityServices:           "Serviços",
	repository.ActivityPassengerTransport: "Transporte de Passageiros",
	repository.ActivityCargoTransport:     "Transporte de Cargas",
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render(fmt.Sprintf("MEI Books - Exercício %d", a.year))
	m := a.metrics()
	body := fmt.Sprintf("Receita bruta: %s\nDespesas: %s\nSaldo Caixa: %s  Saldo Banco: %s",
		a.money(m.TotalRevenue), a.money(m.TotalExpense),
		a.money(m.CashBalance), a.money(m.BankBalance))
	body += fmt.Sprintf("\nAtividade dominante: %s  DAS mensal: %s",
		activityLabels[m.DominantActivity], a.money(m.DASValue))
	body += fmt.Sprintf("\nTeto anual: %s  Uso do teto: %.1f%%", a.money(m.Ceiling), m.CeilingUsagePercent)
	body += fmt.Sprintf("\nLançamentos: %d  Títulos em aberto: %d", len(a.yearTxs), len(a.pending))
	body += "\n\n[t] Lançamentos  [p] Títulos  [r] Conciliação  [i] Importar  [f] Fiscal  [s] Configurações  [[/]] Ano  [q] Sair"
	if a.status != "" {
		body += "\n" + a.status
	}
	return fmt.Sprintf("%s\n%s", title, body)
}

func (a *App) renderTransactions() string {
	title := titleStyle.Render(fmt.Sprintf("Lançamentos %d", a.year))
	out := title + "\n"
	if len(a.yearTxs) == 0 {
		out += "(nenhum lançamento no exercício)\n"
	}
	for i, t := range a.yearTxs {
		marker := " "
		if i == a.txCursor {
			marker = "▶"
		}
		sign := ""
		if t.Type == repository.TypeExpense {
			sign = "-"
		}
		status := " "
		if t.Status == repository.StatusPending {
			status = "◌"
		}
		out += fmt.Sprintf("%s %s %s  %-36s  %12s  %-20s %s\n",
			marker, status, a.displayDate(t.Date), t.Description,
			sign+a.money(t.Amount), t.Subcategory, accountLabel(t.Account))
	}
	out += "[n] Novo  [enter] Editar  [del] Excluir  [d] Painel  [q] Sair"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderPending() string {
	title := titleStyle.Render(fmt.Sprintf("Títulos em Aberto %d", a.year))
	out := title + "\n"
	if len(a.pending) == 0 {
		return out + "Nenhum título pendente.\n[d] Painel  [t] Lançamentos  [q] Sair"
	}
	var receivable, payable float64
	for _, t := range a.pending {
		if t.Type == repository.TypeRevenue {
			receivable += t.Amount
		} else {
			payable += t.Amount
		}
	}
	out += fmt.Sprintf("A receber: %s  A pagar: %s\n", a.money(receivable), a.money(payable))
	for i, t := range a.pending {
		marker := " "
		if i == a.pendingCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s venc. %s  %-36s  %12s  %s\n",
			marker, a.displayDate(t.DueDate), t.Description, a.money(t.Amount), t.Subcategory)
	}
	out += "[l] Liquidar  [d] Painel  [t] Lançamentos  [q] Sair"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderReconcile() string {
	title := titleStyle.Render("Conciliação Bancária")
	rows := a.reconcileRows()
	if len(rows) == 0 {
		return fmt.Sprintf("%s\nNenhum extrato carregado.\n[i] Importar extrato  [d] Painel  [q] Sair", title)
	}
	out := title + "\n"
	for i, row := range rows {
		marker := " "
		if i == a.recCursor {
			marker = "▶"
		}
		state := "sem par"
		switch {
		case row.Confirmed:
			state = "conciliado"
		case row.Matched:
			state = fmt.Sprintf("par %.0f%%", row.Similarity*100)
		}
		out += fmt.Sprintf("%s %s  %-32s  %12s  %s\n",
			marker, a.displayDate(row.Record.Date), row.Record.Description,
			a.money(row.Record.Amount), state)
	}
	out += "[c] Conciliar par  [y] Lançamento rápido  [x] Descartar sessão  [i] Importar  [d] Painel  [q] Sair"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderImport() string {
	title := titleStyle.Render("Importar Extrato")
	body := fmt.Sprintf("Arquivo: %s\nLinhas no formato data;descrição;valor (ou separadas por vírgula).\n[enter] Importar  [esc] Voltar  [q] Sair", a.importPath)
	if n := len(a.services.Importer.Records()); n > 0 {
		body += fmt.Sprintf("\nSessão atual: %d registros (uma nova importação substitui a sessão)", n)
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return fmt.Sprintf("%s\n%s", title, body)
}

func (a *App) renderFiscal() string {
	title := titleStyle.Render(fmt.Sprintf("Resumo Fiscal %d (IRPF)", a.year))
	m := a.metrics()
	out := title + "\n"
	out += fmt.Sprintf("Receita bruta anual:        %14s\n", a.money(m.TotalRevenue))
	out += fmt.Sprintf("Parcela isenta (%.0f%%):      %14s\n", m.DominantExemptionPercent, a.money(m.ExemptProfit))
	out += fmt.Sprintf("Receita líquida:            %14s\n", a.money(m.NetRevenue))
	out += fmt.Sprintf("Lucro tributável:           %14s\n", a.money(m.TaxableProfit))
	out += fmt.Sprintf("DAS mensal estimado:        %14s\n", a.money(m.DASValue))
	out += fmt.Sprintf("Teto de faturamento:        %14s (%.1f%% usado)\n", a.money(m.Ceiling), m.CeilingUsagePercent)
	out += fmt.Sprintf("Saldo inicial caixa/banco:  %14s / %s\n", a.money(m.InitCash), a.money(m.InitBank))
	out += fmt.Sprintf("Movimento caixa/banco:      %14s / %s\n", a.money(m.CashMovement), a.money(m.BankMovement))
	if a.profile.CNPJ != "" {
		out += fmt.Sprintf("\n%s\nCNPJ %s  CPF %s  %s/%s\n",
			a.profile.LegalName, brdoc.MaskCNPJ(a.profile.CNPJ), brdoc.MaskCPF(a.profile.CPF),
			a.profile.City, a.profile.State)
	}
	out += "[d] Painel  [q] Sair"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Configurações")
	out := title + "\n"
	label := "Categorias de Receita"
	if a.settingsType == repository.TypeExpense {
		label = "Categorias de Despesa"
	}
	out += label + " ([tab] alterna)\n"
	cats := a.settingsCats()
	if len(cats) == 0 {
		out += "  (nenhuma categoria)\n"
	}
	for i, name := range cats {
		marker := " "
		if i == a.settingsCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s\n", marker, name)
	}
	out += "\n[n] Nova  [enter] Renomear  [del] Excluir\n"
	out += fmt.Sprintf("Exercício ativo: %d  Moeda: %s\n", a.year, a.currency)
	out += "[g] Gravar preferências  [esc] Painel  [q] Sair"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalNewTx:
		return titleStyle.Render("Novo lançamento (data;descrição;valor;categoria)") + fmt.Sprintf("\n%s\n[enter] Salvar  [esc] Cancelar", a.inputBuffer)
	case modalEditTx:
		return titleStyle.Render("Editar lançamento") + fmt.Sprintf("\n%s\n[enter] Salvar  [esc] Cancelar", a.inputBuffer)
	case modalLiquidate:
		return titleStyle.Render("Liquidar título (data;método)") + fmt.Sprintf("\n%s\n[enter] Liquidar  [esc] Cancelar", a.inputBuffer)
	case modalNewCat:
		return titleStyle.Render("Nova categoria") + fmt.Sprintf("\n%s\n[enter] Salvar  [esc] Cancelar", a.inputBuffer)
	case modalRenameCat:
		return titleStyle.Render("Renomear categoria") + fmt.Sprintf("\n%s\n[enter] Salvar  [esc] Cancelar", a.inputBuffer)
	case modalDeleteTx:
		return titleStyle.Render("Excluir lançamento?") + "\n[y] Sim  [n] Não"
	default:
		return ""
	}
}

func accountLabel(acc repository.Account) string {
	if acc == repository.AccountCash {
		return "Caixa"
	}
	return "Banco"
}
