package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Correlation is a Pearson correlation result with an approximate two-tailed
// significance value.
type Correlation struct {
	R float64 `json:"r"`
	P float64 `json:"p"`
	N int     `json:"n"`
}

// Pearson computes the Pearson correlation coefficient for two equal-length
// series. Fewer than MinCorrelationN points, or zero variance in either
// series, yields the neutral result (r=0, p=1). r is clamped to [−1,1]; a
// perfect |r|==1 reports p=0, otherwise p is approximated from the
// t-statistic as exp(−0.717·|t| − 0.416·t²), zero for |t|≥6.
func Pearson(x, y []float64) Correlation {
	n := len(x)
	if n < MinCorrelationN || len(y) != n {
		return Correlation{R: 0, P: 1, N: n}
	}
	sx, okX := Stdev(x)
	sy, okY := Stdev(y)
	if !okX || !okY || sx == 0 || sy == 0 {
		return Correlation{R: 0, P: 1, N: n}
	}

	r := stat.Correlation(x, y, nil)
	// Clamp for numerical safety.
	r = math.Max(-1, math.Min(1, r))
	if math.Abs(r) >= 1 {
		return Correlation{R: Round(r, 4), P: 0, N: n}
	}

	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	p := 0.0
	if math.Abs(t) < 6 {
		p = math.Exp(-0.717*math.Abs(t) - 0.416*t*t)
	}
	return Correlation{R: Round(r, 4), P: Round(p, 4), N: n}
}
