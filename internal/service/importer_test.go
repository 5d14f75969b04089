package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatementSemicolonISO(t *testing.T) {
	t.Parallel()

	records := ParseStatement("2024-01-05;Payment A;150,00")
	require.Len(t, records, 1)
	require.Equal(t, "2024-01-05", records[0].Date)
	require.Equal(t, "Payment A", records[0].Description)
	require.InDelta(t, 150.0, records[0].Amount, 1e-9)
	require.NotEmpty(t, records[0].ID)
}

func TestParseStatementCommaDayFirst(t *testing.T) {
	t.Parallel()

	records := ParseStatement("05/01/2024,Payment B,-45,50")
	require.Len(t, records, 1)
	require.Equal(t, "2024-01-05", records[0].Date)
	require.Equal(t, "Payment B", records[0].Description)
	require.InDelta(t, -45.5, records[0].Amount, 1e-9)
}

func TestParseStatementHeaderDetection(t *testing.T) {
	t.Parallel()

	withHeader := strings.Join([]string{
		"Data;Descrição;Valor",
		"10-03-2024;Venda Loja;R$ 1.200,00",
		"11-03-2024;Fornecedor;-300,00",
	}, "\n")
	records := ParseStatement(withHeader)
	require.Len(t, records, 2)
	require.Equal(t, "2024-03-10", records[0].Date)
	require.InDelta(t, 1200.0, records[0].Amount, 1e-9)
	require.Equal(t, "2024-03-11", records[1].Date)
	require.InDelta(t, -300.0, records[1].Amount, 1e-9)

	// no header token means every line is data
	records = ParseStatement("2024-03-10;Venda;100,00\n2024-03-11;Compra;-50,00")
	require.Len(t, records, 2)
}

func TestParseStatementDropsMalformedRows(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"date;description;amount",
		"only-two-fields;oops",
		"2024-05-01;Legit;75,00",
		"2024-05-02;Bad amount;abc",
		"",
		"   ",
	}, "\n")
	records := ParseStatement(raw)
	require.Len(t, records, 1)
	require.Equal(t, "Legit", records[0].Description)
}

func TestParseStatementPreservesInputOrder(t *testing.T) {
	t.Parallel()

	raw := "2024-01-02;B;2,00\n2024-01-01;A;1,00\n2024-01-03;C;3,00"
	records := ParseStatement(raw)
	require.Len(t, records, 3)
	require.Equal(t, "B", records[0].Description)
	require.Equal(t, "A", records[1].Description)
	require.Equal(t, "C", records[2].Description)
}

func TestImporterSessionReplacement(t *testing.T) {
	t.Parallel()

	imp := NewImporter()
	first := imp.Import("2024-01-05;Payment A;150,00")
	require.Len(t, first, 1)
	imp.Confirm(first[0].ID)
	require.True(t, imp.Confirmed()[first[0].ID])

	// a new import supersedes the session and resets confirmations
	second := imp.Import("2024-02-01;Other;10,00\n2024-02-02;More;20,00")
	require.Len(t, second, 2)
	require.Len(t, imp.Records(), 2)
	require.Empty(t, imp.Confirmed())

	imp.Clear()
	require.Empty(t, imp.Records())
	require.Empty(t, imp.Confirmed())
}
