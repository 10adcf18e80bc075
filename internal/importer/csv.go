package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerly/bankrecon_app/internal/dto"
)

// ErrInvalidCSVFormat indicates a structural problem with the uploaded CSV:
// too few lines, or required columns missing under every accepted alias.
var ErrInvalidCSVFormat = errors.New("invalid CSV format")

// Accepted header aliases, matched case-insensitively after trimming.
// These must remain stable: exported bank statements in the wild rely on them.
var (
	dateAliases        = []string{"date", "transaction date", "txn date", "value date"}
	descriptionAliases = []string{"description", "narration", "particulars", "details"}
	debitAliases       = []string{"debit", "withdrawal", "debit amount", "withdrawal amt", "withdrawal amount"}
	creditAliases      = []string{"credit", "deposit", "credit amount", "deposit amt", "deposit amount"}
	balanceAliases     = []string{"balance", "running balance", "closing balance"}
	txnIDAliases       = []string{"transaction id", "txn id", "reference", "ref no", "cheque number"}
)

// ParseBankStatementCSV parses raw CSV content into import rows.
// The header row is required and must contain a recognizable Date and
// Description column. Data rows too short to carry both are skipped silently;
// content validation happens later in the import service.
func ParseBankStatementCSV(content string) ([]dto.BankStatementImportRow, error) {
	cr := csv.NewReader(strings.NewReader(content))
	cr.FieldsPerRecord = -1 // Bank exports pad rows inconsistently
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSVFormat, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrInvalidCSVFormat)
	}

	header := records[0]
	dateIdx := findColumn(header, dateAliases)
	descIdx := findColumn(header, descriptionAliases)
	if dateIdx < 0 || descIdx < 0 {
		return nil, fmt.Errorf("%w: could not locate Date and Description columns", ErrInvalidCSVFormat)
	}
	debitIdx := findColumn(header, debitAliases)
	creditIdx := findColumn(header, creditAliases)
	balanceIdx := findColumn(header, balanceAliases)
	txnIDIdx := findColumn(header, txnIDAliases)

	minFields := dateIdx
	if descIdx > minFields {
		minFields = descIdx
	}

	rows := make([]dto.BankStatementImportRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= minFields {
			continue
		}
		rows = append(rows, dto.BankStatementImportRow{
			Date:          strings.TrimSpace(rec[dateIdx]),
			Description:   strings.TrimSpace(rec[descIdx]),
			Debit:         fieldAt(rec, debitIdx),
			Credit:        fieldAt(rec, creditIdx),
			Balance:       fieldAt(rec, balanceIdx),
			TransactionID: fieldAt(rec, txnIDIdx),
		})
	}

	return rows, nil
}

// findColumn returns the index of the first header cell matching any alias.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

func fieldAt(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
