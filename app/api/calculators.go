package api

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/realty-desk/app/format"
	"github.com/lysyi3m/realty-desk/app/invest"
)

// metricsResponse mirrors invest.InvestmentMetrics for JSON. DSCR is null when
// there is no debt service, since JSON has no infinity.
type metricsResponse struct {
	CapRate            float64  `json:"cap_rate"`
	IRR                float64  `json:"irr"`
	NPV                float64  `json:"npv"`
	CashOnCashReturn   float64  `json:"cash_on_cash_return"`
	DSCR               *float64 `json:"dscr"`
	BreakEvenOccupancy float64  `json:"break_even_occupancy"`
}

func newMetricsResponse(m invest.InvestmentMetrics) metricsResponse {
	response := metricsResponse{
		CapRate:            m.CapRate,
		IRR:                m.IRR,
		NPV:                m.NPV,
		CashOnCashReturn:   m.CashOnCashReturn,
		BreakEvenOccupancy: m.BreakEvenOccupancy,
	}
	if !math.IsInf(m.DSCR, 0) && !math.IsNaN(m.DSCR) {
		dscr := m.DSCR
		response.DSCR = &dscr
	}
	return response
}

func formatMetrics(f *format.Formatter, m invest.InvestmentMetrics) map[string]string {
	return map[string]string{
		"cap_rate":             f.Percent(m.CapRate),
		"irr":                  f.Percent(m.IRR),
		"npv":                  f.Currency(m.NPV),
		"cash_on_cash_return":  f.Percent(m.CashOnCashReturn),
		"dscr":                 f.Ratio(m.DSCR),
		"break_even_occupancy": f.Percent(m.BreakEvenOccupancy),
	}
}

func (h *Handler) PostProForma(c *gin.Context) {
	var req proFormaRequest
	if !bindJSON(c, &req) {
		return
	}

	out := invest.GenerateProForma(req.toInputs())
	f := h.formatter

	c.JSON(http.StatusOK, gin.H{
		"result": out,
		"formatted": map[string]string{
			"gross_rental_income":      f.Currency(out.GrossRentalIncome),
			"effective_rental_income":  f.Currency(out.EffectiveRentalIncome),
			"total_operating_expenses": f.Currency(out.TotalOperatingExpenses),
			"noi":                      f.Currency(out.NOI),
			"cash_flow_before_debt":    f.Currency(out.CashFlowBeforeDebt),
			"cash_flow_after_debt":     f.Currency(out.CashFlowAfterDebt),
			"cap_rate":                 f.Percent(out.CapRate),
			"cash_on_cash_return":      f.Percent(out.CashOnCashReturn),
			"gross_rent_multiplier":    f.Ratio(out.GrossRentMultiplier),
		},
	})
}

func (h *Handler) PostMortgage(c *gin.Context) {
	var req mortgageRequest
	if !bindJSON(c, &req) {
		return
	}

	payment := invest.MonthlyMortgagePayment(req.Principal, req.AnnualRate, req.TermYears)
	totalPaid := payment * float64(req.TermYears*12)
	totalInterest := totalPaid - req.Principal

	response := gin.H{
		"monthly_payment": payment,
		"total_paid":      totalPaid,
		"total_interest":  totalInterest,
		"formatted": map[string]string{
			"monthly_payment": h.formatter.Currency(payment),
			"total_paid":      h.formatter.Currency(totalPaid),
			"total_interest":  h.formatter.Currency(totalInterest),
		},
	}
	if req.IncludeSchedule {
		response["schedule"] = invest.AmortizationSchedule(req.Principal, req.AnnualRate, req.TermYears)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) PostProjection(c *gin.Context) {
	var req financialsRequest
	if !bindJSON(c, &req) {
		return
	}

	projections := invest.ProjectCashFlows(req.toFinancials())

	totalCashFlow := 0.0
	for _, p := range projections {
		totalCashFlow += p.CashFlow
	}
	last := projections[len(projections)-1]

	c.JSON(http.StatusOK, gin.H{
		"projections": projections,
		"summary": gin.H{
			"total_cash_flow":      totalCashFlow,
			"final_property_value": last.PropertyValue,
			"cumulative_cash_flow": last.CumulativeCashFlow,
		},
		"formatted": map[string]string{
			"total_cash_flow":      h.formatter.Currency(totalCashFlow),
			"final_property_value": h.formatter.Currency(last.PropertyValue),
			"cumulative_cash_flow": h.formatter.Currency(last.CumulativeCashFlow),
		},
	})
}

func (h *Handler) PostAnalysis(c *gin.Context) {
	var req financialsRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.analysisResponse(req.toFinancials()))
}

func (h *Handler) analysisResponse(p invest.PropertyFinancials) gin.H {
	metrics := invest.Analyze(p)

	return gin.H{
		"metrics":     newMetricsResponse(metrics),
		"formatted":   formatMetrics(h.formatter, metrics),
		"projections": invest.ProjectCashFlows(p),
	}
}
