package market

// ComputeAggregates groups windowed observations by symbol and derives summary
// statistics, fresh on every call. Symbols with no observations currently in
// the window are absent from the result. Current is the price of the symbol's
// most recently pushed observation; Volume is the sum of the symbol's windowed
// volumes.
func ComputeAggregates(window []Observation) map[string]Aggregate {
	out := make(map[string]Aggregate)
	if len(window) == 0 {
		return out
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, obs := range window {
		agg, seen := out[obs.Symbol]
		if !seen {
			agg = Aggregate{Min: obs.Price, Max: obs.Price}
		}
		agg.Current = obs.Price
		if obs.Price < agg.Min {
			agg.Min = obs.Price
		}
		if obs.Price > agg.Max {
			agg.Max = obs.Price
		}
		agg.Volume += obs.Volume
		out[obs.Symbol] = agg
		sums[obs.Symbol] += obs.Price
		counts[obs.Symbol]++
	}
	for sym, agg := range out {
		agg.Avg = Round2(sums[sym] / float64(counts[sym]))
		out[sym] = agg
	}
	return out
}
