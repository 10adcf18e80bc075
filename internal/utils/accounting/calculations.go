package accounting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// journalNumberPrefix is the human-readable prefix for journal numbers.
const journalNumberPrefix = "JE"

// SumLines returns the debit and credit totals of a set of journal lines.
func SumLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateJournalBalance checks that a journal's lines form a valid double entry:
// at least two lines, every line single-sided with a positive amount, and the
// debit sum exactly equal to the credit sum.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}

	for _, line := range lines {
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return fmt.Errorf("journal line %s has both debit and credit amounts", line.LineID)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("journal line %s has a negative amount", line.LineID)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("journal line %s has no amount", line.LineID)
		}
	}

	debits, credits := SumLines(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("journal lines do not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}

	return nil
}

// NextJournalNumber returns the journal number following lastNumber.
// An empty lastNumber yields the first number for a user (JE001). Numbers are
// zero-padded to at least three digits and keep growing past JE999.
func NextJournalNumber(lastNumber string) (string, error) {
	if lastNumber == "" {
		return FormatJournalNumber(1), nil
	}
	seq, err := ParseJournalNumber(lastNumber)
	if err != nil {
		return "", err
	}
	return FormatJournalNumber(seq + 1), nil
}

// FormatJournalNumber renders a sequence value as a journal number (JE001...).
func FormatJournalNumber(seq int) string {
	return fmt.Sprintf("%s%03d", journalNumberPrefix, seq)
}

// ParseJournalNumber extracts the sequence value from a journal number.
func ParseJournalNumber(number string) (int, error) {
	if !strings.HasPrefix(number, journalNumberPrefix) {
		return 0, fmt.Errorf("invalid journal number %q: missing %s prefix", number, journalNumberPrefix)
	}
	seq, err := strconv.Atoi(number[len(journalNumberPrefix):])
	if err != nil {
		return 0, fmt.Errorf("invalid journal number %q: %w", number, err)
	}
	if seq <= 0 {
		return 0, fmt.Errorf("invalid journal number %q: sequence must be positive", number)
	}
	return seq, nil
}
