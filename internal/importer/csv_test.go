package importer_test

import (
	"testing"

	"github.com/ledgerly/bankrecon_app/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBankStatementCSV_CanonicalHeader(t *testing.T) {
	content := "Date,Description,Debit,Credit,Balance\n" +
		"2024-01-15,Payment from client,0,1000,5000\n" +
		"2024-01-16,Office rent,2000,0,3000\n"

	rows, err := importer.ParseBankStatementCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-15", rows[0].Date)
	assert.Equal(t, "Payment from client", rows[0].Description)
	assert.Equal(t, "0", rows[0].Debit)
	assert.Equal(t, "1000", rows[0].Credit)
	assert.Equal(t, "5000", rows[0].Balance)
	assert.Empty(t, rows[0].TransactionID)
}

func TestParseBankStatementCSV_AliasHeadersParseIdentically(t *testing.T) {
	canonical := "Date,Description,Debit,Credit\n" +
		"2024-01-15,Payment from client,0,1000\n" +
		"2024-01-16,Office rent,2000,0\n"
	aliased := "Transaction Date,Narration,Withdrawal,Deposit\n" +
		"2024-01-15,Payment from client,0,1000\n" +
		"2024-01-16,Office rent,2000,0\n"

	canonicalRows, err := importer.ParseBankStatementCSV(canonical)
	require.NoError(t, err)
	aliasedRows, err := importer.ParseBankStatementCSV(aliased)
	require.NoError(t, err)

	assert.Equal(t, canonicalRows, aliasedRows)
}

func TestParseBankStatementCSV_CaseInsensitiveHeader(t *testing.T) {
	content := "DATE,NARRATION,WITHDRAWAL AMT,DEPOSIT AMT\n" +
		"15/01/2024,UPI transfer,150.50,0\n"

	rows, err := importer.ParseBankStatementCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "150.50", rows[0].Debit)
}

func TestParseBankStatementCSV_TransactionIDColumn(t *testing.T) {
	content := "Date,Description,Debit,Credit,Transaction ID\n" +
		"2024-01-15,NEFT inward,0,500,TXN-0042\n"

	rows, err := importer.ParseBankStatementCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TXN-0042", rows[0].TransactionID)
}

func TestParseBankStatementCSV_HeaderOnly(t *testing.T) {
	_, err := importer.ParseBankStatementCSV("Date,Description,Debit,Credit\n")
	assert.ErrorIs(t, err, importer.ErrInvalidCSVFormat)
}

func TestParseBankStatementCSV_Empty(t *testing.T) {
	_, err := importer.ParseBankStatementCSV("")
	assert.ErrorIs(t, err, importer.ErrInvalidCSVFormat)
}

func TestParseBankStatementCSV_MissingRequiredColumns(t *testing.T) {
	content := "Amount,Type\n100,CR\n"
	_, err := importer.ParseBankStatementCSV(content)
	require.ErrorIs(t, err, importer.ErrInvalidCSVFormat)
	assert.Contains(t, err.Error(), "Date and Description")
}

func TestParseBankStatementCSV_ShortRowsSkipped(t *testing.T) {
	content := "Date,Description,Debit,Credit\n" +
		"2024-01-15\n" +
		"2024-01-16,Office rent,2000,0\n"

	rows, err := importer.ParseBankStatementCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Office rent", rows[0].Description)
}
