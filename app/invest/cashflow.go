package invest

import "math"

const (
	irrInitialGuess  = 0.10
	irrMaxIterations = 100
	irrTolerance     = 0.0001
	irrMinRate       = -0.99
	irrMaxRate       = 10.0
)

// NPV discounts cashFlows[t] by (1+discountRate)^(t+1) and subtracts the
// initial investment.
func NPV(cashFlows []float64, discountRate, initialInvestment float64) float64 {
	total := 0.0
	for t, cf := range cashFlows {
		total += cf / math.Pow(1+discountRate, float64(t+1))
	}
	return total - initialInvestment
}

// npvDerivative is d(NPV)/d(rate).
func npvDerivative(cashFlows []float64, rate float64) float64 {
	total := 0.0
	for t, cf := range cashFlows {
		period := float64(t + 1)
		total -= period * cf / math.Pow(1+rate, period+1)
	}
	return total
}

// IRR finds a root of NPV by Newton-Raphson and returns it in percent.
// The search is bounded: it starts at 10%, runs at most 100 iterations and
// clamps the rate to [-99%, 1000%] after every step. Cash flows with several
// sign changes may converge to any of their roots, or to none; results near
// the clamp bounds mean the search did not converge.
func IRR(cashFlows []float64, initialInvestment float64) float64 {
	rate := irrInitialGuess

	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(cashFlows, rate, initialInvestment)
		if math.Abs(npv) < irrTolerance {
			break
		}

		derivative := npvDerivative(cashFlows, rate)
		if math.Abs(derivative) < irrTolerance {
			break
		}

		rate -= npv / derivative
		rate = math.Min(math.Max(rate, irrMinRate), irrMaxRate)
	}

	return rate * 100
}
