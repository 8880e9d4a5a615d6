package density

import "math"

// DefaultCurvePoints is the number of samples Curve takes when points <= 1.
const DefaultCurvePoints = 100

// Point is one sample of a fitted pdf.
type Point struct {
	X float64
	Y float64
}

// PDF evaluates the Gaussian density of d at x. A zero std is a point mass:
// +Inf at the mean and 0 elsewhere.
func PDF(d ClusterDensity, x float64) float64 {
	return math.Exp(LogPDF(d, x))
}

// LogPDF evaluates the log of the Gaussian density of d at x.
func LogPDF(d ClusterDensity, x float64) float64 {
	if d.Std == 0 {
		if x == d.Mean {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	z := (x - d.Mean) / d.Std
	return -0.5*z*z - math.Log(d.Std) - 0.5*math.Log(2*math.Pi)
}

// Curve samples the pdf of d at evenly spaced points over [lo, hi].
func Curve(d ClusterDensity, lo, hi float64, points int) []Point {
	if points <= 1 {
		points = DefaultCurvePoints
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	step := (hi - lo) / float64(points-1)
	out := make([]Point, points)
	for i := range out {
		x := lo + float64(i)*step
		if i == points-1 {
			x = hi
		}
		out[i] = Point{X: x, Y: PDF(d, x)}
	}
	return out
}

// Range returns the interval the cluster's curve is drawn over: one year
// beyond the observed extremes on each side.
func Range(d ClusterDensity) (float64, float64) {
	return d.Min - 1, d.Max + 1
}
