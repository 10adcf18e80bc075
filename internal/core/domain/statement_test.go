package domain_test

import (
	"testing"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBankStatementLine_Amount(t *testing.T) {
	tests := []struct {
		name string
		line domain.BankStatementLine
		want decimal.Decimal
	}{
		{
			name: "debit line",
			line: domain.BankStatementLine{Debit: decimal.NewFromInt(2000)},
			want: decimal.NewFromInt(2000),
		},
		{
			name: "credit line",
			line: domain.BankStatementLine{Credit: decimal.NewFromInt(1000)},
			want: decimal.NewFromInt(1000),
		},
		{
			name: "empty line",
			line: domain.BankStatementLine{},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.line.Amount()))
		})
	}
}
