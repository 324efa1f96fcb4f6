package hedgefund

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/montanaflynn/stats"
)

// history summarises a series of monthly returns in percent. Annualised
// figures assume independent months.
type history struct {
	annualReturn      float64
	annualVolatility  float64
	downsideDeviation float64
	skewness          float64
	excessKurtosis    float64
	maxDrawdown       float64
	monthlyVaR        float64 // loss in percent at the confidence level
}

// summarise computes the statistics of monthly returns. It needs at least
// two observations.
func summarise(monthly []float64, riskFreeRate, confidence float64) (history, error) {
	data := stats.Float64Data(monthly)
	mean, err := stats.Mean(data)
	if err != nil {
		return history{}, err
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return history{}, err
	}
	// Short series have no observation below the tail percentile; the worst
	// month stands in for it.
	tail, err := stats.Percentile(data, constants.PercentageMultiplier-confidence)
	if err != nil {
		if tail, err = stats.Min(data); err != nil {
			return history{}, err
		}
	}

	months := float64(constants.MonthsPerYear)
	h := history{
		annualReturn:     mean * months,
		annualVolatility: sd * math.Sqrt(months),
		monthlyVaR:       math.Max(0, -tail),
	}

	// Moments about the mean, population form.
	n := float64(len(monthly))
	var m2, m3, m4, downside float64
	rfMonthly := riskFreeRate / months
	for _, r := range monthly {
		d := r - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
		if shortfall := math.Min(0, r-rfMonthly); shortfall < 0 {
			downside += shortfall * shortfall
		}
	}
	m2, m3, m4 = m2/n, m3/n, m4/n
	if m2 > 0 {
		h.skewness = m3 / math.Pow(m2, 1.5)
		h.excessKurtosis = m4/(m2*m2) - 3
	}
	h.downsideDeviation = math.Sqrt(downside/n) * math.Sqrt(months)
	h.maxDrawdown = maxDrawdown(monthly)
	return h, nil
}

// maxDrawdown returns the largest peak-to-trough decline of the compounded
// series, in percent.
func maxDrawdown(monthly []float64) float64 {
	value, peak, worst := 1.0, 1.0, 0.0
	for _, r := range monthly {
		value *= 1 + r/constants.PercentageMultiplier
		peak = math.Max(peak, value)
		worst = math.Max(worst, (peak-value)/peak)
	}
	return worst * constants.PercentageMultiplier
}
