package wave

import (
	"math"

	"github.com/example/wfc/bitfield"
	"github.com/example/wfc/pattern"
)

// entropyCache is the per-cell cached Shannon-entropy summary (§4.5). A
// collapsed cell (size <= 1) is pinned at +Inf so it is never chosen
// again by chooseLeastEntropy.
type entropyCache struct {
	sumWeights           float64
	sumWeightsLogWeights float64
	h                    float64
}

var collapsedEntropy = entropyCache{
	sumWeights:           math.Inf(1),
	sumWeightsLogWeights: math.Inf(1),
	h:                    math.Inf(1),
}

// entropyFromSums implements the entropy formula from §4.5:
// H = log2(sum_w) - sum_w_log_w / sum_w, algebraically equal to the
// standard Shannon entropy of the normalized weight distribution.
func entropyFromSums(sumW, sumWLogW float64) float64 {
	return math.Log2(sumW) - sumWLogW/sumW
}

// computeEntropy computes the entropy summary for a possible set from
// scratch. It is only ever called once per Wave (all cells start
// identical), after which entropy is maintained incrementally by
// removePattern to keep observe+propagate near-linear (§9).
func computeEntropy(table *pattern.Table, set bitfield.PatternSet) entropyCache {
	if set.Len() <= 1 {
		return collapsedEntropy
	}

	var sumW, sumWLogW float64
	set.Range(func(p uint16) {
		w := float64(table.Weight(p))
		sumW += w
		sumWLogW += w * math.Log2(w)
	})
	return entropyCache{sumWeights: sumW, sumWeightsLogWeights: sumWLogW, h: entropyFromSums(sumW, sumWLogW)}
}
