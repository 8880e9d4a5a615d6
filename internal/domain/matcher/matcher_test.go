package matcher_test

import (
	"errors"
	"math"
	"testing"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/matcher"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatch(t *testing.T) {
	Convey("Given two separated clusters", t, func() {
		ds := []density.ClusterDensity{
			{ClusterID: 0, Mean: 2, Std: 0.8},
			{ClusterID: 1, Mean: 10, Std: 1.4},
		}

		Convey("When a candidate sits near the second mean", func() {
			res, err := matcher.Match(9, ds)

			Convey("Then the second cluster should win with every score reported", func() {
				So(err, ShouldBeNil)
				So(res.ClusterID, ShouldEqual, 1)
				So(len(res.Scores), ShouldEqual, 2)
				So(res.LogDensity, ShouldEqual, res.Scores[1].LogDensity)
			})

			Convey("Then matching again should give the same answer", func() {
				again, _ := matcher.Match(9, ds)
				So(again, ShouldResemble, res)
			})
		})

		Convey("When a candidate is far outside every cluster", func() {
			res, err := matcher.Match(1e4, ds)

			Convey("Then log space should still rank the wider tail first", func() {
				So(err, ShouldBeNil)
				So(res.ClusterID, ShouldEqual, 1)
				So(math.IsInf(res.LogDensity, 0), ShouldBeFalse)
			})
		})
	})

	Convey("Given two clusters with identical parameters", t, func() {
		ds := []density.ClusterDensity{
			{ClusterID: 3, Mean: 5, Std: 1},
			{ClusterID: 1, Mean: 5, Std: 1},
		}

		Convey("Then the lower cluster id should win whatever the input order", func() {
			res, err := matcher.Match(6.5, ds)
			So(err, ShouldBeNil)
			So(res.ClusterID, ShouldEqual, 1)
		})
	})

	Convey("Given a point-mass cluster", t, func() {
		ds := []density.ClusterDensity{
			{ClusterID: 0, Mean: 5, Std: 1},
			{ClusterID: 2, Mean: 7, Std: 0},
		}

		Convey("Then a candidate exactly at its value should pick it", func() {
			res, _ := matcher.Match(7, ds)
			So(res.ClusterID, ShouldEqual, 2)
			So(math.IsInf(res.LogDensity, 1), ShouldBeTrue)
		})

		Convey("Then a candidate elsewhere should never pick it", func() {
			res, _ := matcher.Match(7.01, ds)
			So(res.ClusterID, ShouldEqual, 0)
		})
	})

	Convey("Given only point masses away from the candidate", t, func() {
		ds := []density.ClusterDensity{
			{ClusterID: 4, Mean: 1, Std: 0},
			{ClusterID: 2, Mean: 3, Std: 0},
		}

		Convey("Then the all -Inf tie should go to the lowest id", func() {
			res, err := matcher.Match(2, ds)
			So(err, ShouldBeNil)
			So(res.ClusterID, ShouldEqual, 2)
		})
	})

	Convey("Given no eligible cluster", t, func() {
		_, err := matcher.Match(3, nil)

		Convey("Then a no-eligible-cluster error should be returned", func() {
			So(errors.Is(err, model.ErrNoEligibleCluster), ShouldBeTrue)
		})
	})

	Convey("Given a non-finite candidate value", t, func() {
		_, err := matcher.Match(math.NaN(), []density.ClusterDensity{{ClusterID: 0, Std: 1}})

		Convey("Then a configuration error should be returned", func() {
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})
	})
}

func TestMembers(t *testing.T) {
	Convey("Given a labeled catalog", t, func() {
		jobs := []model.JobRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
		labels := []int{1, 0, 1, 1}

		Convey("Then members should keep catalog order", func() {
			got := matcher.Members(jobs, labels, 1)
			So(len(got), ShouldEqual, 3)
			So(got[0].ID, ShouldEqual, "a")
			So(got[1].ID, ShouldEqual, "c")
			So(got[2].ID, ShouldEqual, "d")
		})

		Convey("Then an unused id should yield nothing", func() {
			So(matcher.Members(jobs, labels, 5), ShouldBeEmpty)
		})
	})
}
