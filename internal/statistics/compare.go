package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Comparison contains the results of comparing two samples with Welch's t-test
type Comparison struct {
	Difference float64 // Mean difference, a minus b
	StdError   float64 // Standard error of difference
	TStatistic float64
	DF         float64 // Welch-Satterthwaite degrees of freedom
	PValue     float64 // Two-tailed
	EffectSize float64 // Cohen's d
	CI95Low    float64
	CI95High   float64
}

// Compare tests whether a's mean result differs from b's. With fewer than two
// hands on either side, or no variance at all, there is nothing to test and
// the p-value is 1.
func Compare(a, b Statistics) Comparison {
	diff := a.Mean() - b.Mean()
	seA, seB := a.StdError(), b.StdError()
	se := math.Sqrt(seA*seA + seB*seB)

	c := Comparison{
		Difference: diff,
		StdError:   se,
		PValue:     1,
		CI95Low:    diff,
		CI95High:   diff,
	}
	if pooled := pooledStdDev(&a, &b); pooled > 0 {
		c.EffectSize = diff / pooled
	}
	if a.Hands < 2 || b.Hands < 2 || se == 0 {
		return c
	}

	c.TStatistic = diff / se
	c.DF = welchDF(&a, &b)

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: c.DF}
	c.PValue = 2 * t.Survival(math.Abs(c.TStatistic))
	margin := t.Quantile(0.975) * se
	c.CI95Low, c.CI95High = diff-margin, diff+margin
	return c
}

// Significant reports whether the difference is significant at alpha
func (c Comparison) Significant(alpha float64) bool {
	return c.PValue < alpha
}

// EffectLabel describes the effect size in Cohen's terms
func (c Comparison) EffectLabel() string {
	d := math.Abs(c.EffectSize)
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

func pooledStdDev(a, b *Statistics) float64 {
	n := a.Hands + b.Hands - 2
	if n <= 0 {
		return 0
	}
	v := (float64(a.Hands-1)*a.Variance() + float64(b.Hands-1)*b.Variance()) / float64(n)
	return math.Sqrt(v)
}

func welchDF(a, b *Statistics) float64 {
	va := a.Variance() / float64(a.Hands)
	vb := b.Variance() / float64(b.Hands)
	den := va*va/float64(a.Hands-1) + vb*vb/float64(b.Hands-1)
	if den == 0 {
		return float64(a.Hands + b.Hands - 2)
	}
	return (va + vb) * (va + vb) / den
}
