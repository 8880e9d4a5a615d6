package density_test

import (
	"math"
	"testing"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimate(t *testing.T) {
	Convey("Given labeled experience values over four clusters", t, func() {
		values := []float64{1, 3, 10, 5, 12, 2, 7, 7}
		labels := []int{0, 0, 1, 2, 1, 0, 3, 3}

		Convey("When estimating with the population divisor", func() {
			ds := density.New().Estimate(values, labels, 4)

			Convey("Then the singleton cluster should be omitted", func() {
				ids := []int{}
				for _, d := range ds {
					ids = append(ids, d.ClusterID)
				}
				So(ids, ShouldResemble, []int{0, 1, 3})
			})

			Convey("Then mean and std should use N", func() {
				So(ds[0].Mean, ShouldAlmostEqual, 2, 1e-12)
				So(ds[0].Std, ShouldAlmostEqual, math.Sqrt(2.0/3.0), 1e-12)
				So(ds[0].Count, ShouldEqual, 3)
				So(ds[1].Mean, ShouldAlmostEqual, 11, 1e-12)
				So(ds[1].Std, ShouldAlmostEqual, 1, 1e-12)
			})

			Convey("Then a cluster of identical values should have std 0", func() {
				So(ds[2].Std, ShouldEqual, 0)
				So(ds[2].Min, ShouldEqual, 7)
				So(ds[2].Max, ShouldEqual, 7)
			})

			Convey("Then every std should be non-negative", func() {
				for _, d := range ds {
					So(d.Std, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})
		})

		Convey("When estimating with the sample divisor", func() {
			ds := density.New(density.WithDivisor(density.Sample)).Estimate(values, labels, 4)

			Convey("Then std should use N-1", func() {
				So(ds[0].Std, ShouldAlmostEqual, 1, 1e-12)
				So(ds[1].Std, ShouldAlmostEqual, math.Sqrt2, 1e-12)
			})
		})

		Convey("When every cluster has at most one member", func() {
			ds := density.New().Estimate([]float64{1, 2}, []int{0, 1}, 3)

			Convey("Then no density should be produced", func() {
				So(ds, ShouldBeEmpty)
			})
		})

		Convey("When the inputs are left untouched", func() {
			density.New().Estimate(values, labels, 4)
			So(values[0], ShouldEqual, 1)
			So(labels[4], ShouldEqual, 1)
		})
	})
}

func TestParseDivisor(t *testing.T) {
	Convey("Given divisor names", t, func() {
		d, err := density.ParseDivisor("Sample")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, density.Sample)
		So(d.String(), ShouldEqual, "sample")

		d, err = density.ParseDivisor("")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, density.Population)

		_, err = density.ParseDivisor("median")
		So(err, ShouldNotBeNil)
	})
}

func TestLogPDFAndCurve(t *testing.T) {
	Convey("Given a standard normal density", t, func() {
		d := density.ClusterDensity{Mean: 0, Std: 1, Min: -1, Max: 1}

		Convey("Then the log pdf at the mean should be -ln(sqrt(2 pi))", func() {
			So(density.LogPDF(d, 0), ShouldAlmostEqual, -0.5*math.Log(2*math.Pi), 1e-12)
			So(density.PDF(d, 0), ShouldAlmostEqual, 1/math.Sqrt(2*math.Pi), 1e-12)
		})

		Convey("Then far tails should stay finite in log space", func() {
			lp := density.LogPDF(d, 1e6)
			So(math.IsInf(lp, 0), ShouldBeFalse)
			So(density.PDF(d, 1e6), ShouldEqual, 0)
		})

		Convey("When sampling its curve over the padded range", func() {
			lo, hi := density.Range(d)
			pts := density.Curve(d, lo, hi, 5)

			Convey("Then the samples should be evenly spaced and symmetric", func() {
				So(lo, ShouldEqual, -2)
				So(hi, ShouldEqual, 2)
				So(len(pts), ShouldEqual, 5)
				So(pts[0].X, ShouldEqual, -2)
				So(pts[2].X, ShouldEqual, 0)
				So(pts[4].X, ShouldEqual, 2)
				So(pts[0].Y, ShouldAlmostEqual, pts[4].Y, 1e-15)
			})
		})

		Convey("When asking for too few points", func() {
			So(len(density.Curve(d, 0, 1, 0)), ShouldEqual, density.DefaultCurvePoints)
		})
	})

	Convey("Given a point mass", t, func() {
		d := density.ClusterDensity{Mean: 4, Std: 0}

		Convey("Then the log pdf should be +Inf at the mean and -Inf elsewhere", func() {
			So(math.IsInf(density.LogPDF(d, 4), 1), ShouldBeTrue)
			So(math.IsInf(density.LogPDF(d, 4.0001), -1), ShouldBeTrue)
		})
	})
}
