package invest

import "math"

// MonthlyMortgagePayment is the fixed-rate amortizing payment. A zero-rate
// loan is repaid in equal instalments.
func MonthlyMortgagePayment(principal, annualRate float64, termYears int) float64 {
	if principal == 0 || termYears == 0 {
		return 0
	}

	n := float64(termYears * 12)
	if annualRate == 0 {
		return principal / n
	}

	r := annualRate / 12
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// RemainingLoanBalance is the principal still owed after yearsPaid years of
// scheduled payments, never below 0.
func RemainingLoanBalance(principal, annualRate float64, termYears, yearsPaid int) float64 {
	if principal == 0 || termYears == 0 || yearsPaid >= termYears {
		return 0
	}
	if yearsPaid <= 0 {
		return principal
	}

	totalPayments := float64(termYears * 12)
	paymentsMade := float64(yearsPaid * 12)

	var balance float64
	if annualRate == 0 {
		balance = principal * (1 - paymentsMade/totalPayments)
	} else {
		r := annualRate / 12
		balance = principal * (math.Pow(1+r, totalPayments) - math.Pow(1+r, paymentsMade)) /
			(math.Pow(1+r, totalPayments) - 1)
	}

	return math.Max(balance, 0)
}

// AmortizationSchedule splits each loan year into principal and interest.
func AmortizationSchedule(principal, annualRate float64, termYears int) []AmortizationRow {
	if principal == 0 || termYears <= 0 {
		return nil
	}

	annualPayment := MonthlyMortgagePayment(principal, annualRate, termYears) * 12
	rows := make([]AmortizationRow, 0, termYears)
	previous := principal

	for year := 1; year <= termYears; year++ {
		balance := RemainingLoanBalance(principal, annualRate, termYears, year)
		paidDown := previous - balance
		rows = append(rows, AmortizationRow{
			Year:          year,
			Payment:       annualPayment,
			Principal:     paidDown,
			Interest:      annualPayment - paidDown,
			EndingBalance: balance,
		})
		previous = balance
	}

	return rows
}

// annualDebtService is the supplied debt service, or twelve scheduled
// payments on the financed part of the purchase price.
func annualDebtService(p PropertyFinancials) float64 {
	if p.AnnualDebtService != nil {
		return *p.AnnualDebtService
	}
	loan := LoanAmount(p.PurchasePrice, p.DownPaymentPercent)
	return MonthlyMortgagePayment(loan, p.InterestRate, p.LoanTermYears) * 12
}
