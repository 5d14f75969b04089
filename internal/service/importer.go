package service

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BankRecord is one imported statement line. Amount keeps its sign: credits
// are positive, debits negative. Records live only for the import session.
type BankRecord struct {
	ID          string
	Date        string
	Description string
	Amount      float64
}

// Importer parses bank-statement text and owns the import-session state: the
// current record set and the ids the user has confirmed as reconciled. A new
// import replaces the session wholesale, it never merges with a prior one.
type Importer struct {
	records   []BankRecord
	confirmed map[string]bool
}

func NewImporter() *Importer {
	return &Importer{confirmed: map[string]bool{}}
}

// Import parses raw statement text and atomically replaces the session.
// The confirmed set is reset on every import.
func (s *Importer) Import(raw string) []BankRecord {
	s.records = ParseStatement(raw)
	s.confirmed = map[string]bool{}
	return s.records
}

// Clear drops the session, mirroring the "limpar checklist" action.
func (s *Importer) Clear() {
	s.records = nil
	s.confirmed = map[string]bool{}
}

func (s *Importer) Records() []BankRecord { return s.records }

func (s *Importer) Confirm(recordID string) { s.confirmed[recordID] = true }

func (s *Importer) Confirmed() map[string]bool { return s.confirmed }

// ParseStatement turns a delimited statement blob into bank records.
// Tolerances: a header line mentioning "data"/"date" is skipped, lines with
// fewer than 3 fields are dropped, rows whose amount does not parse are
// dropped. Surviving rows keep input order and get fresh ids.
func ParseStatement(raw string) []BankRecord {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	start := 0
	head := strings.ToLower(lines[0])
	if strings.Contains(head, "data") || strings.Contains(head, "date") {
		start = 1
	}

	var records []BankRecord
	for _, line := range lines[start:] {
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ';' || r == ',' })
		if len(parts) < 3 {
			continue
		}
		amount, err := parseStatementAmount(parts[len(parts)-1], parts)
		if err != nil {
			continue
		}
		records = append(records, BankRecord{
			ID:          uuid.NewString(),
			Date:        normalizeStatementDate(parts[0]),
			Description: strings.TrimSpace(parts[1]),
			Amount:      amount,
		})
	}
	return records
}

// normalizeStatementDate maps DD-MM-YYYY and DD/MM/YYYY to YYYY-MM-DD.
// Already-ISO dates pass through with separators normalized.
func normalizeStatementDate(raw string) string {
	date := strings.ReplaceAll(strings.TrimSpace(raw), "/", "-")
	segs := strings.Split(date, "-")
	if len(segs) == 3 && len(segs[0]) == 2 {
		return segs[2] + "-" + segs[1] + "-" + segs[0]
	}
	return date
}

// parseStatementAmount handles the Brazilian statement formats: optional R$
// prefix, "." thousands separators and a decimal comma. Because the comma is
// also a field delimiter, a fractional part split into its own field is
// rejoined here ("-45" + "50" -> -45.50).
func parseStatementAmount(last string, parts []string) (float64, error) {
	token := strings.TrimSpace(parts[2])
	if len(parts) > 3 && isFraction(last) {
		token = strings.TrimSpace(parts[len(parts)-2]) + "," + strings.TrimSpace(last)
	}
	token = strings.TrimPrefix(token, "R$")
	token = strings.TrimSpace(token)
	token = strings.ReplaceAll(token, ".", "")
	token = strings.ReplaceAll(token, ",", ".")
	return strconv.ParseFloat(token, 64)
}

func isFraction(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
