package service

import (
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// EquityPool is the total equity available on a pitch, out of which
// equity-type investments allocate their share.
const EquityPool = 100.0

// computeMetrics aggregates a pitch's counted investments into the metrics
// stored on the pitch row. A single O(n) pass computes:
//   - average, largest, and smallest investment amount
//   - total equity allocated across equity-type investments
//   - equity remaining out of the fixed pool
//   - average equity per equity-bearing investment
//
// All values are rounded to two decimal places. An empty input yields zero
// metrics with the full equity pool remaining.
func computeMetrics(investments []model.Investment) model.PitchMetrics {
	metrics := model.PitchMetrics{
		EquityRemaining: EquityPool,
	}

	if len(investments) == 0 {
		return metrics
	}

	var totalAmount float64
	var equityHolders int
	largest := investments[0].Amount
	smallest := investments[0].Amount

	for _, inv := range investments {
		totalAmount += inv.Amount
		if inv.Amount > largest {
			largest = inv.Amount
		}
		if inv.Amount < smallest {
			smallest = inv.Amount
		}
		if inv.InvestmentType == model.InvestmentTypeEquity && inv.Equity > 0 {
			metrics.TotalEquityAllocated += inv.Equity
			equityHolders++
		}
	}

	metrics.AverageInvestment = round(totalAmount / float64(len(investments)))
	metrics.LargestInvestment = round(largest)
	metrics.SmallestInvestment = round(smallest)
	metrics.TotalEquityAllocated = round(metrics.TotalEquityAllocated)
	metrics.EquityRemaining = round(EquityPool - metrics.TotalEquityAllocated)
	if equityHolders > 0 {
		metrics.AverageEquityPerInvestor = round(metrics.TotalEquityAllocated / float64(equityHolders))
	}

	return metrics
}
