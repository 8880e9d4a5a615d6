// Package density fits a univariate Gaussian to the years of experience of
// each cluster.
package density

import (
	"fmt"
	"math"
	"strings"
)

// Divisor selects the standard deviation convention.
type Divisor int

const (
	// Population divides by N, the maximum-likelihood estimate.
	Population Divisor = iota
	// Sample divides by N-1.
	Sample
)

func (d Divisor) String() string {
	switch d {
	case Population:
		return "population"
	case Sample:
		return "sample"
	default:
		return fmt.Sprintf("divisor(%d)", int(d))
	}
}

// ParseDivisor maps "population" or "sample" to a Divisor.
func ParseDivisor(s string) (Divisor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "population", "":
		return Population, nil
	case "sample":
		return Sample, nil
	default:
		return Population, fmt.Errorf("unknown std divisor %q", s)
	}
}

// ClusterDensity is the fitted experience distribution of one cluster.
type ClusterDensity struct {
	ClusterID int
	Mean      float64
	Std       float64
	Count     int
	Min       float64
	Max       float64
}

// Estimator computes per-cluster densities.
type Estimator struct {
	divisor Divisor
}

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithDivisor sets the standard deviation convention.
func WithDivisor(d Divisor) Option {
	return func(e *Estimator) {
		if d == Population || d == Sample {
			e.divisor = d
		}
	}
}

// New creates an Estimator using the population divisor unless overridden.
func New(opts ...Option) *Estimator {
	e := &Estimator{divisor: Population}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Divisor returns the configured convention.
func (e *Estimator) Divisor() Divisor {
	return e.divisor
}

// Estimate groups values by label and fits every cluster in [0,k) that has
// at least two members. The result is ordered by cluster id. Labels outside
// [0,k) are ignored.
func (e *Estimator) Estimate(values []float64, labels []int, k int) []ClusterDensity {
	if k <= 0 {
		return nil
	}
	groups := make([][]float64, k)
	for i, l := range labels {
		if i >= len(values) || l < 0 || l >= k {
			continue
		}
		groups[l] = append(groups[l], values[i])
	}

	out := make([]ClusterDensity, 0, k)
	for id, g := range groups {
		if len(g) < 2 {
			continue
		}
		out = append(out, e.fit(id, g))
	}
	return out
}

func (e *Estimator) fit(id int, g []float64) ClusterDensity {
	d := ClusterDensity{ClusterID: id, Count: len(g), Min: g[0], Max: g[0]}
	var sum float64
	for _, v := range g {
		sum += v
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
	}
	d.Mean = sum / float64(len(g))

	var ss float64
	for _, v := range g {
		diff := v - d.Mean
		ss += diff * diff
	}
	n := float64(len(g))
	if e.divisor == Sample {
		n--
	}
	d.Std = math.Sqrt(ss / n)
	return d
}
