package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/rfarias/meibooks/internal/database/repository"
)

// ImportMethod tags transactions auto-created from a statement record.
const ImportMethod = "Importação Bancária"

// ReconciliationRow is the projection of one bank record against the ledger.
type ReconciliationRow struct {
	Record     BankRecord
	Match      *repository.Transaction
	Matched    bool
	Confirmed  bool
	Similarity float64
}

// Reconciler pairs imported bank records against the active year's ledger.
// It is stateless: every call is a pure projection over its inputs.
type Reconciler struct{}

// Match produces one row per bank record. A transaction is a candidate when
// it is a paid bank-account entry with the same absolute amount and either
// the same date or a description containing the record's first 5 characters.
// Pending titles never pair: a statement line is settled money, an open
// title is not. First match wins; there is no ranking. The similarity score
// is purely informational for review ordering.
func (Reconciler) Match(yearTxs []repository.Transaction, records []BankRecord, confirmed map[string]bool) []ReconciliationRow {
	rows := make([]ReconciliationRow, 0, len(records))
	for _, rec := range records {
		row := ReconciliationRow{Record: rec, Confirmed: confirmed[rec.ID]}
		for i := range yearTxs {
			t := yearTxs[i]
			if t.Account != repository.AccountBank || t.Status != repository.StatusPaid {
				continue
			}
			if math.Abs(t.Amount) != math.Abs(rec.Amount) {
				continue
			}
			if t.Date == rec.Date || strings.Contains(t.Description, descPrefix(rec.Description)) {
				row.Match = &yearTxs[i]
				row.Matched = true
				row.Similarity = similarity(t.Description, rec.Description)
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// QuickLaunch builds a new ledger transaction from an unmatched record:
// direction inferred from the sign, forced to the bank account, already paid,
// defaulting to the first category of the inferred type.
func (Reconciler) QuickLaunch(rec BankRecord, revenueCats, expenseCats []string) repository.Transaction {
	t := repository.Transaction{
		ID:          uuid.NewString(),
		Description: "[AUTO] " + rec.Description,
		Amount:      math.Abs(rec.Amount),
		Date:        rec.Date,
		DueDate:     rec.Date,
		Type:        repository.TypeRevenue,
		Status:      repository.StatusPaid,
		Account:     repository.AccountBank,
		Method:      ImportMethod,
	}
	if rec.Amount < 0 {
		t.Type = repository.TypeExpense
		if len(expenseCats) > 0 {
			t.Subcategory = expenseCats[0]
		}
		return t
	}
	if len(revenueCats) > 0 {
		t.Subcategory = revenueCats[0]
	}
	return t
}

func descPrefix(desc string) string {
	r := []rune(desc)
	if len(r) > 5 {
		r = r[:5]
	}
	return string(r)
}

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	// rune count, not byte length: the distance is rune-based and accented
	// descriptions are the norm here
	n := utf8.RuneCountInString(a)
	if bn := utf8.RuneCountInString(b); bn > n {
		n = bn
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a), strings.ToUpper(b))
	return 1 - float64(dist)/float64(n)
}
