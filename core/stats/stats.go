// Package stats classifies per-window contribution-weight distributions as
// balanced or hero-dominated. The shape test is a replaceable strategy so
// alternative tests can be swapped without touching the graph components.
package stats

import (
	"math"
	"sort"

	"github.com/keydevs/keygraph/schema"
)

// ShapeTest is the strategy interface for distribution classification.
// Classify receives the window's contribution weights (one per developer,
// zeros included) and a significance level, and returns the label plus the
// test statistic and p-value. PValue is NaN when the strategy decided
// without one.
type ShapeTest interface {
	Name() schema.ClassifierName
	Classify(weights []float64, alpha float64) (schema.DistributionLabel, float64, float64)
}

// ForName returns the shape test registered under the given name, falling
// back to the skewness test.
func ForName(name schema.ClassifierName) ShapeTest {
	if name == schema.KSUniformClassifier {
		return KSUniformTest{}
	}
	return SkewnessTest{}
}

// Classify applies the shape test with the minimum-sample guard: below
// minSample developers the label is insufficient_data rather than a guess.
func Classify(test ShapeTest, weights []float64, alpha float64, minSample int) schema.DistributionResult {
	result := schema.DistributionResult{
		SampleSize: len(weights),
		Statistic:  math.NaN(),
		PValue:     math.NaN(),
	}
	if len(weights) < minSample {
		result.Label = schema.InsufficientDataLabel
		return result
	}

	label, statistic, p := test.Classify(weights, alpha)
	result.Label = label
	result.Statistic = statistic
	result.PValue = p
	return result
}

// SkewnessTest labels a window hero when the weight distribution is
// significantly right-skewed: a few developers holding disproportionate
// weight pulls the sample skewness positive. For samples of eight or more
// it runs the D'Agostino skewness z-test; smaller samples fall back to a
// fixed skewness limit, since the z-transform is unreliable there.
type SkewnessTest struct{}

// Skewness limit for small samples, matching the common "skew above one is
// substantial" rule.
const smallSampleSkewLimit = 1.0

// Name implements ShapeTest.
func (SkewnessTest) Name() schema.ClassifierName { return schema.SkewnessClassifier }

// Classify implements ShapeTest.
func (SkewnessTest) Classify(weights []float64, alpha float64) (schema.DistributionLabel, float64, float64) {
	g1, ok := sampleSkewness(weights)
	if !ok {
		// Zero variance: everyone holds identical weight.
		return schema.BalancedLabel, 0, math.NaN()
	}

	n := len(weights)
	if n < 8 {
		if g1 > smallSampleSkewLimit {
			return schema.HeroLabel, g1, math.NaN()
		}
		return schema.BalancedLabel, g1, math.NaN()
	}

	z := skewnessZ(g1, n)
	p := 2 * normalSurvival(math.Abs(z))
	if p < alpha && g1 > 0 {
		return schema.HeroLabel, g1, p
	}
	return schema.BalancedLabel, g1, p
}

// KSUniformTest labels a window hero when a one-sample Kolmogorov-Smirnov
// test rejects the hypothesis that the min-max scaled weights are uniform
// and the distribution is right-skewed. A near-uniform spread of weights is
// the signature of a balanced team.
type KSUniformTest struct{}

// Name implements ShapeTest.
func (KSUniformTest) Name() schema.ClassifierName { return schema.KSUniformClassifier }

// Classify implements ShapeTest.
func (KSUniformTest) Classify(weights []float64, alpha float64) (schema.DistributionLabel, float64, float64) {
	scaled := minMaxScale(weights)
	if scaled == nil {
		return schema.BalancedLabel, 0, math.NaN()
	}
	sort.Float64s(scaled)

	// Supremum distance between the empirical CDF and Uniform(0,1).
	n := len(scaled)
	var d float64
	for i, v := range scaled {
		upper := float64(i+1)/float64(n) - v
		lower := v - float64(i)/float64(n)
		d = math.Max(d, math.Max(upper, lower))
	}

	p := kolmogorovSurvival(d, n)
	g1, _ := sampleSkewness(weights)
	if p < alpha && g1 > 0 {
		return schema.HeroLabel, d, p
	}
	return schema.BalancedLabel, d, p
}

// sampleSkewness returns the biased sample skewness g1 = m3 / m2^1.5.
// ok is false when the variance is zero.
func sampleSkewness(xs []float64) (float64, bool) {
	n := float64(len(xs))
	if n == 0 {
		return 0, false
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= n

	var m2, m3 float64
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return 0, false
	}
	return m3 / math.Pow(m2, 1.5), true
}

// skewnessZ applies the D'Agostino (1970) transform, mapping sample
// skewness to an approximately standard normal statistic.
func skewnessZ(g1 float64, n int) float64 {
	fn := float64(n)
	y := g1 * math.Sqrt((fn+1)*(fn+3)/(6*(fn-2)))
	beta2 := 3 * (fn*fn + 27*fn - 70) * (fn + 1) * (fn + 3) /
		((fn - 2) * (fn + 5) * (fn + 7) * (fn + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	a := math.Sqrt(2 / (w2 - 1))
	return delta * math.Log(y/a+math.Sqrt((y/a)*(y/a)+1))
}

// normalSurvival is P(Z > z) for the standard normal distribution.
func normalSurvival(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// kolmogorovSurvival is the asymptotic survival function of the KS
// statistic, with the Stephens small-sample adjustment.
func kolmogorovSurvival(d float64, n int) float64 {
	sn := math.Sqrt(float64(n))
	t := (sn + 0.12 + 0.11/sn) * d
	if t <= 0 {
		return 1
	}

	var sum float64
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * t * t)
		if k%2 == 1 {
			sum += term
		} else {
			sum -= term
		}
		if term < 1e-12 {
			break
		}
	}
	p := 2 * sum
	return math.Min(1, math.Max(0, p))
}

// minMaxScale maps weights onto [0, 1]. Returns nil when all weights are
// identical, which has no shape to test.
func minMaxScale(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if hi == lo {
		return nil
	}
	scaled := make([]float64, len(xs))
	for i, x := range xs {
		scaled[i] = (x - lo) / (hi - lo)
	}
	return scaled
}
