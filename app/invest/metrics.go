// Package invest holds the real-estate investment calculations. Every
// function is pure and total: division by zero and zero terms resolve to
// fixed sentinel values instead of errors. Inputs are validated by callers.
package invest

import "math"

func NOI(grossIncome, operatingExpenses float64) float64 {
	return grossIncome - operatingExpenses
}

// CapRate returns NOI as a percentage of property value, or 0 for a zero value.
func CapRate(noi, propertyValue float64) float64 {
	if propertyValue == 0 {
		return 0
	}
	return noi / propertyValue * 100
}

// CashOnCash returns the annual cash flow as a percentage of cash invested,
// or 0 when nothing was invested.
func CashOnCash(annualCashFlow, cashInvested float64) float64 {
	if cashInvested == 0 {
		return 0
	}
	return annualCashFlow / cashInvested * 100
}

func GrossRentMultiplier(price, annualGrossRent float64) float64 {
	if annualGrossRent == 0 {
		return 0
	}
	return price / annualGrossRent
}

// DSCR is +Inf when there is no debt to cover.
func DSCR(noi, annualDebtService float64) float64 {
	if annualDebtService == 0 {
		return math.Inf(1)
	}
	return noi / annualDebtService
}

// BreakEvenOccupancy is the share of rent needed to cover expenses and debt,
// in percent. Zero rent yields 0.
func BreakEvenOccupancy(annualOperatingExpenses, annualDebtService, annualRentalIncome float64) float64 {
	if annualRentalIncome == 0 {
		return 0
	}
	return (annualOperatingExpenses + annualDebtService) / annualRentalIncome * 100
}

func DownPayment(purchasePrice, downPaymentPercent float64) float64 {
	return purchasePrice * downPaymentPercent
}

func LoanAmount(purchasePrice, downPaymentPercent float64) float64 {
	return purchasePrice - DownPayment(purchasePrice, downPaymentPercent)
}
