package invest

// Rates and fractions are decimals (0.05 is 5%). Every percentage-valued
// output is already multiplied by 100. Currency amounts are whole units.

const (
	DefaultDiscountRate       = 0.08
	ProFormaDownPaymentFactor = 0.20
)

// PropertyFinancials drives the multi-year projection and aggregate metrics.
type PropertyFinancials struct {
	PurchasePrice           float64  `yaml:"purchase_price" json:"purchase_price"`
	AnnualRentalIncome      float64  `yaml:"annual_rental_income" json:"annual_rental_income"`
	AnnualOperatingExpenses float64  `yaml:"annual_operating_expenses" json:"annual_operating_expenses"`
	AnnualDebtService       *float64 `yaml:"annual_debt_service" json:"annual_debt_service,omitempty"` // derived from the loan terms when nil
	DownPaymentPercent      float64  `yaml:"down_payment_percent" json:"down_payment_percent"`
	InterestRate            float64  `yaml:"interest_rate" json:"interest_rate"`
	LoanTermYears           int      `yaml:"loan_term_years" json:"loan_term_years"`
	AppreciationRate        float64  `yaml:"appreciation_rate" json:"appreciation_rate"`
	RentalGrowthRate        float64  `yaml:"rental_growth_rate" json:"rental_growth_rate"`
	ExpenseGrowthRate       float64  `yaml:"expense_growth_rate" json:"expense_growth_rate"`
	HoldingPeriodYears      int      `yaml:"holding_period_years" json:"holding_period_years"`
	DiscountRate            *float64 `yaml:"discount_rate" json:"discount_rate,omitempty"` // DefaultDiscountRate when nil
}

type ProFormaInputs struct {
	PurchasePrice             float64
	MonthlyRentalIncome       float64
	MonthlyOperatingExpenses  float64
	MonthlyDebtService        *float64
	VacancyRate               float64
	ManagementFeePercent      float64 // of effective rental income
	MaintenanceReservePercent float64 // of effective rental income
	PropertyTaxes             float64 // annual
	Insurance                 float64 // annual
	OtherExpenses             float64 // annual
}

type ProFormaOutputs struct {
	GrossRentalIncome      float64 `json:"gross_rental_income"`
	EffectiveRentalIncome  float64 `json:"effective_rental_income"`
	TotalOperatingExpenses float64 `json:"total_operating_expenses"`
	NOI                    float64 `json:"noi"`
	CashFlowBeforeDebt     float64 `json:"cash_flow_before_debt"`
	CashFlowAfterDebt      float64 `json:"cash_flow_after_debt"`
	CapRate                float64 `json:"cap_rate"`
	CashOnCashReturn       float64 `json:"cash_on_cash_return"`
	GrossRentMultiplier    float64 `json:"gross_rent_multiplier"`
}

type CashFlowProjection struct {
	Year               int     `json:"year"`
	RentalIncome       float64 `json:"rental_income"`
	OperatingExpenses  float64 `json:"operating_expenses"`
	NOI                float64 `json:"noi"`
	DebtService        float64 `json:"debt_service"`
	CashFlow           float64 `json:"cash_flow"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
	PropertyValue      float64 `json:"property_value"`
}

type InvestmentMetrics struct {
	CapRate            float64 `json:"cap_rate"`
	IRR                float64 `json:"irr"`
	NPV                float64 `json:"npv"`
	CashOnCashReturn   float64 `json:"cash_on_cash_return"`
	DSCR               float64 `json:"dscr"`
	BreakEvenOccupancy float64 `json:"break_even_occupancy"`
}

type AmortizationRow struct {
	Year          int     `json:"year"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"ending_balance"`
}
