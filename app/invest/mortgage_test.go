package invest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyMortgagePayment(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termYears  int
		expected   float64
	}{
		{"thirty year at four percent", 400000, 0.04, 30, 1909.66},
		{"fifteen year at six percent", 200000, 0.06, 15, 1687.71},
		{"zero rate is straight line", 120000, 0, 10, 1000},
		{"zero principal", 0, 0.05, 30, 0},
		{"zero term", 250000, 0.05, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MonthlyMortgagePayment(tt.principal, tt.annualRate, tt.termYears), 0.01)
		})
	}
}

func TestRemainingLoanBalance(t *testing.T) {
	assert.Equal(t, 0.0, RemainingLoanBalance(400000, 0.04, 30, 30))
	assert.Equal(t, 0.0, RemainingLoanBalance(400000, 0.04, 30, 45))
	assert.Equal(t, 400000.0, RemainingLoanBalance(400000, 0.04, 30, 0))
	assert.Equal(t, 0.0, RemainingLoanBalance(0, 0.04, 30, 5))
	assert.InDelta(t, 60000.0, RemainingLoanBalance(120000, 0, 10, 5), 1e-9)

	previous := 400000.0
	for year := 1; year < 30; year++ {
		balance := RemainingLoanBalance(400000, 0.04, 30, year)
		assert.Less(t, balance, previous, "balance should fall every year (year %d)", year)
		assert.GreaterOrEqual(t, balance, 0.0)
		previous = balance
	}
}

func TestRemainingLoanBalanceMatchesPayments(t *testing.T) {
	// Rolling the balance forward month by month must agree with the closed form.
	principal, annualRate := 300000.0, 0.05
	payment := MonthlyMortgagePayment(principal, annualRate, 30)

	balance := principal
	for month := 0; month < 10*12; month++ {
		balance = balance*(1+annualRate/12) - payment
	}

	assert.InDelta(t, balance, RemainingLoanBalance(principal, annualRate, 30, 10), 0.01)
}

func TestAmortizationSchedule(t *testing.T) {
	rows := AmortizationSchedule(400000, 0.04, 30)
	require.Len(t, rows, 30)

	totalPrincipal := 0.0
	for i, row := range rows {
		assert.Equal(t, i+1, row.Year)
		assert.InDelta(t, 1909.66*12, row.Payment, 0.12)
		assert.InDelta(t, row.Payment, row.Principal+row.Interest, 1e-6)
		totalPrincipal += row.Principal
	}

	assert.InDelta(t, 400000.0, totalPrincipal, 1e-6)
	assert.Equal(t, 0.0, rows[29].EndingBalance)
	assert.Greater(t, rows[0].Interest, rows[29].Interest)

	assert.Nil(t, AmortizationSchedule(0, 0.04, 30))
	assert.Nil(t, AmortizationSchedule(400000, 0.04, 0))
}
