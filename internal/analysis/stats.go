// Package analysis implements the three exploratory analyzers for
// longitudinal study data: participation, visit-timing deviation, and
// structural stratification. All three are pure with respect to their
// input table and share the same descriptive-statistics core.
package analysis

import (
	"math"

	"longeda/domain/study"
	"longeda/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// computeStats produces the four-statistic summary over the given
// values. Statistics with no defined value stay undefined: everything
// for an empty input, the sample standard deviation for n < 2.
func computeStats(values []float64) study.Stats {
	s := study.Stats{N: len(values)}
	if len(values) == 0 {
		return s
	}

	data := stats.Float64Data(values)
	if m, err := stats.Mean(data); err == nil {
		s.Mean = table.Some(m)
	}
	if lo, err := stats.Min(data); err == nil {
		s.Min = table.Some(lo)
	}
	if hi, err := stats.Max(data); err == nil {
		s.Max = table.Some(hi)
	}
	if len(values) >= 2 {
		if sd, err := stats.StandardDeviationSample(data); err == nil {
			s.StdDev = table.Some(sd)
		}
	}
	return s
}

// distributionShape characterizes skewness, kurtosis, and approximate
// normality of the values. Returns nil when fewer than three values
// exist or the data is constant.
func distributionShape(values []float64) *study.DistributionShape {
	if len(values) < 3 {
		return nil
	}

	data := stats.Float64Data(values)
	mean, err := stats.Mean(data)
	if err != nil {
		return nil
	}
	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil || stdDev == 0 {
		return nil
	}

	skewness := sampleSkewness(values, mean, stdDev)
	kurtosis := sampleKurtosis(values, mean, stdDev)

	// Jarque-Bera-style approximation: combined skewness/kurtosis
	// statistic against a chi-squared with 2 degrees of freedom.
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(testStat*testStat)

	return &study.DistributionShape{
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: pValue > 0.05,
		PValue:   pValue,
	}
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient.
func sampleSkewness(values []float64, mean, stdDev float64) float64 {
	if len(values) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(values))
	sumCubed := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// sampleKurtosis computes total (not excess) sample kurtosis with bias
// correction.
func sampleKurtosis(values []float64, mean, stdDev float64) float64 {
	if len(values) < 4 || stdDev == 0 {
		return 3.0
	}

	n := float64(len(values))
	sumFourth := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	kurtosis := sumFourth / n
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}
	return kurtosis + 3
}
