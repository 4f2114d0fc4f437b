package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lysyi3m/realty-desk/app/invest"
)

// Request bodies carry the boundary validation the calculators rely on: prices
// positive, amounts non-negative, rates within 0..0.5, terms within 1..50 years.

type proFormaRequest struct {
	PurchasePrice             float64  `json:"purchase_price" binding:"gt=0"`
	MonthlyRentalIncome       float64  `json:"monthly_rental_income" binding:"gte=0"`
	MonthlyOperatingExpenses  float64  `json:"monthly_operating_expenses" binding:"gte=0"`
	MonthlyDebtService        *float64 `json:"monthly_debt_service" binding:"omitempty,gte=0"`
	VacancyRate               float64  `json:"vacancy_rate" binding:"gte=0,lte=0.5"`
	ManagementFeePercent      float64  `json:"management_fee_percent" binding:"gte=0,lte=0.5"`
	MaintenanceReservePercent float64  `json:"maintenance_reserve_percent" binding:"gte=0,lte=0.5"`
	PropertyTaxes             float64  `json:"property_taxes" binding:"gte=0"`
	Insurance                 float64  `json:"insurance" binding:"gte=0"`
	OtherExpenses             float64  `json:"other_expenses" binding:"gte=0"`
}

func (r proFormaRequest) toInputs() invest.ProFormaInputs {
	return invest.ProFormaInputs{
		PurchasePrice:             r.PurchasePrice,
		MonthlyRentalIncome:       r.MonthlyRentalIncome,
		MonthlyOperatingExpenses:  r.MonthlyOperatingExpenses,
		MonthlyDebtService:        r.MonthlyDebtService,
		VacancyRate:               r.VacancyRate,
		ManagementFeePercent:      r.ManagementFeePercent,
		MaintenanceReservePercent: r.MaintenanceReservePercent,
		PropertyTaxes:             r.PropertyTaxes,
		Insurance:                 r.Insurance,
		OtherExpenses:             r.OtherExpenses,
	}
}

type mortgageRequest struct {
	Principal       float64 `json:"principal" binding:"gt=0"`
	AnnualRate      float64 `json:"annual_rate" binding:"gte=0,lte=0.5"`
	TermYears       int     `json:"term_years" binding:"min=1,max=50"`
	IncludeSchedule bool    `json:"include_schedule"`
}

type financialsRequest struct {
	PurchasePrice           float64  `json:"purchase_price" binding:"gt=0"`
	AnnualRentalIncome      float64  `json:"annual_rental_income" binding:"gte=0"`
	AnnualOperatingExpenses float64  `json:"annual_operating_expenses" binding:"gte=0"`
	AnnualDebtService       *float64 `json:"annual_debt_service" binding:"omitempty,gte=0"`
	DownPaymentPercent      float64  `json:"down_payment_percent" binding:"gte=0,lte=1"`
	InterestRate            float64  `json:"interest_rate" binding:"gte=0,lte=0.5"`
	LoanTermYears           int      `json:"loan_term_years" binding:"min=1,max=50"`
	AppreciationRate        float64  `json:"appreciation_rate" binding:"gte=0,lte=0.5"`
	RentalGrowthRate        float64  `json:"rental_growth_rate" binding:"gte=0,lte=0.5"`
	ExpenseGrowthRate       float64  `json:"expense_growth_rate" binding:"gte=0,lte=0.5"`
	HoldingPeriodYears      int      `json:"holding_period_years" binding:"min=1,max=50"`
	DiscountRate            *float64 `json:"discount_rate" binding:"omitempty,gte=0,lte=0.5"`
}

func (r financialsRequest) toFinancials() invest.PropertyFinancials {
	return invest.PropertyFinancials{
		PurchasePrice:           r.PurchasePrice,
		AnnualRentalIncome:      r.AnnualRentalIncome,
		AnnualOperatingExpenses: r.AnnualOperatingExpenses,
		AnnualDebtService:       r.AnnualDebtService,
		DownPaymentPercent:      r.DownPaymentPercent,
		InterestRate:            r.InterestRate,
		LoanTermYears:           r.LoanTermYears,
		AppreciationRate:        r.AppreciationRate,
		RentalGrowthRate:        r.RentalGrowthRate,
		ExpenseGrowthRate:       r.ExpenseGrowthRate,
		HoldingPeriodYears:      r.HoldingPeriodYears,
		DiscountRate:            r.DiscountRate,
	}
}

// bindJSON decodes and validates the body. On failure it writes a 400
// response listing the offending fields and returns false.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request",
			"fields": fields,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
