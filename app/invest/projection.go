package invest

// GenerateProForma builds a single-year summary. Management fee and
// maintenance reserve are charged on effective (post-vacancy) income, and
// cash-on-cash assumes a 20% down payment regardless of actual financing.
func GenerateProForma(in ProFormaInputs) ProFormaOutputs {
	gross := in.MonthlyRentalIncome * 12
	effective := gross * (1 - in.VacancyRate)

	managementFee := effective * in.ManagementFeePercent
	maintenanceReserve := effective * in.MaintenanceReservePercent
	totalOperatingExpenses := in.MonthlyOperatingExpenses*12 +
		managementFee +
		maintenanceReserve +
		in.PropertyTaxes +
		in.Insurance +
		in.OtherExpenses

	noi := NOI(effective, totalOperatingExpenses)

	var debtService float64
	if in.MonthlyDebtService != nil {
		debtService = *in.MonthlyDebtService * 12
	}
	cashFlowAfterDebt := noi - debtService

	return ProFormaOutputs{
		GrossRentalIncome:      gross,
		EffectiveRentalIncome:  effective,
		TotalOperatingExpenses: totalOperatingExpenses,
		NOI:                    noi,
		CashFlowBeforeDebt:     noi,
		CashFlowAfterDebt:      cashFlowAfterDebt,
		CapRate:                CapRate(noi, in.PurchasePrice),
		CashOnCashReturn:       CashOnCash(cashFlowAfterDebt, in.PurchasePrice*ProFormaDownPaymentFactor),
		GrossRentMultiplier:    GrossRentMultiplier(in.PurchasePrice, gross),
	}
}

// ProjectCashFlows projects HoldingPeriodYears years. Year 1 uses the base
// income and expenses; growth compounds on the running values from year 2 on.
// PropertyValue is the end-of-year value after appreciation. Debt service is
// the same every year.
func ProjectCashFlows(p PropertyFinancials) []CashFlowProjection {
	if p.HoldingPeriodYears <= 0 {
		return nil
	}

	debtService := annualDebtService(p)
	rentalIncome := p.AnnualRentalIncome
	operatingExpenses := p.AnnualOperatingExpenses
	propertyValue := p.PurchasePrice
	cumulative := -DownPayment(p.PurchasePrice, p.DownPaymentPercent)

	projections := make([]CashFlowProjection, 0, p.HoldingPeriodYears)
	for year := 1; year <= p.HoldingPeriodYears; year++ {
		if year > 1 {
			rentalIncome *= 1 + p.RentalGrowthRate
			operatingExpenses *= 1 + p.ExpenseGrowthRate
		}
		propertyValue *= 1 + p.AppreciationRate

		noi := NOI(rentalIncome, operatingExpenses)
		cashFlow := noi - debtService
		cumulative += cashFlow

		projections = append(projections, CashFlowProjection{
			Year:               year,
			RentalIncome:       rentalIncome,
			OperatingExpenses:  operatingExpenses,
			NOI:                noi,
			DebtService:        debtService,
			CashFlow:           cashFlow,
			CumulativeCashFlow: cumulative,
			PropertyValue:      propertyValue,
		})
	}

	return projections
}

// Analyze runs the projection, adds sale proceeds (final value less the
// remaining loan) to the last year's cash flow and evaluates NPV and IRR
// against the down payment. Single-year ratios use the year-one figures.
func Analyze(p PropertyFinancials) InvestmentMetrics {
	discountRate := DefaultDiscountRate
	if p.DiscountRate != nil {
		discountRate = *p.DiscountRate
	}

	downPayment := DownPayment(p.PurchasePrice, p.DownPaymentPercent)
	debtService := annualDebtService(p)
	projections := ProjectCashFlows(p)

	cashFlows := make([]float64, len(projections))
	for i, projection := range projections {
		cashFlows[i] = projection.CashFlow
	}
	if n := len(projections); n > 0 {
		loan := LoanAmount(p.PurchasePrice, p.DownPaymentPercent)
		remaining := RemainingLoanBalance(loan, p.InterestRate, p.LoanTermYears, p.HoldingPeriodYears)
		cashFlows[n-1] += projections[n-1].PropertyValue - remaining
	}

	noi := NOI(p.AnnualRentalIncome, p.AnnualOperatingExpenses)

	return InvestmentMetrics{
		CapRate:            CapRate(noi, p.PurchasePrice),
		IRR:                IRR(cashFlows, downPayment),
		NPV:                NPV(cashFlows, discountRate, downPayment),
		CashOnCashReturn:   CashOnCash(noi-debtService, downPayment),
		DSCR:               DSCR(noi, debtService),
		BreakEvenOccupancy: BreakEvenOccupancy(p.AnnualOperatingExpenses, debtService, p.AnnualRentalIncome),
	}
}
