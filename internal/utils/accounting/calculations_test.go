package accounting_test

import (
	"testing"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		LineID: "line",
		Debit:  decimal.NewFromInt(debit),
		Credit: decimal.NewFromInt(credit),
	}
}

func TestValidateJournalBalance_Balanced(t *testing.T) {
	lines := []domain.JournalLine{line(100, 0), line(0, 100)}
	assert.NoError(t, accounting.ValidateJournalBalance(lines))
}

func TestValidateJournalBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{line(100, 0), line(0, 99)}
	err := accounting.ValidateJournalBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not balance")
}

func TestValidateJournalBalance_SingleLine(t *testing.T) {
	err := accounting.ValidateJournalBalance([]domain.JournalLine{line(100, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")
}

func TestValidateJournalBalance_BothSidesSet(t *testing.T) {
	lines := []domain.JournalLine{
		{LineID: "bad", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
		line(0, 50),
	}
	err := accounting.ValidateJournalBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both debit and credit")
}

func TestValidateJournalBalance_ZeroLine(t *testing.T) {
	lines := []domain.JournalLine{line(0, 0), line(0, 0)}
	err := accounting.ValidateJournalBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no amount")
}

func TestNextJournalNumber(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{name: "first number", last: "", want: "JE001"},
		{name: "increments", last: "JE001", want: "JE002"},
		{name: "crosses ten", last: "JE009", want: "JE010"},
		{name: "crosses hundred", last: "JE099", want: "JE100"},
		{name: "past three digits", last: "JE999", want: "JE1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.NextJournalNumber(tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextJournalNumber_Invalid(t *testing.T) {
	_, err := accounting.NextJournalNumber("INV042")
	assert.Error(t, err)

	_, err = accounting.NextJournalNumber("JEabc")
	assert.Error(t, err)
}

func TestParseJournalNumber_RoundTrip(t *testing.T) {
	for _, seq := range []int{1, 42, 999, 12345} {
		parsed, err := accounting.ParseJournalNumber(accounting.FormatJournalNumber(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, parsed)
	}
}
