package clustering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/clustering"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/linalg"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func matrixOf(rows [][]float64) *linalg.Matrix {
	m := linalg.NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		copy(m.Row(i), r)
	}
	return m
}

func twoBlobs() *linalg.Matrix {
	return matrixOf([][]float64{
		{0, 0}, {0.1, 0.2}, {-0.1, 0.1}, {0.2, -0.1},
		{10, 10}, {10.1, 9.9}, {9.8, 10.2}, {10.2, 10.1},
	})
}

func TestFit(t *testing.T) {
	ctx := context.Background()

	Convey("Given two well separated blobs", t, func() {
		m := twoBlobs()
		res, err := clustering.New().Fit(ctx, m, 2)
		So(err, ShouldBeNil)

		Convey("Then labels should partition the rows into [0,k)", func() {
			So(len(res.Labels), ShouldEqual, m.Rows)
			total := 0
			for _, c := range res.Clusters {
				total += len(c.Members)
				for _, i := range c.Members {
					So(res.Labels[i], ShouldEqual, c.ID)
				}
			}
			So(total, ShouldEqual, m.Rows)
			for _, l := range res.Labels {
				So(l, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("Then each blob should form its own cluster", func() {
			So(res.Labels[0], ShouldNotEqual, res.Labels[4])
			for i := 1; i < 4; i++ {
				So(res.Labels[i], ShouldEqual, res.Labels[0])
				So(res.Labels[i+4], ShouldEqual, res.Labels[4])
			}
			So(res.Converged, ShouldBeTrue)
		})

		Convey("Then centroids should be member means", func() {
			c := res.Clusters[res.Labels[0]]
			So(c.Centroid[0], ShouldAlmostEqual, 0.05, 1e-12)
			So(c.Centroid[1], ShouldAlmostEqual, 0.05, 1e-12)
		})

		Convey("When fitting again with the same seed", func() {
			again, err := clustering.New().Fit(ctx, m, 2)
			So(err, ShouldBeNil)

			Convey("Then labels and centroids should be identical", func() {
				So(again.Labels, ShouldResemble, res.Labels)
				for i := range res.Clusters {
					So(again.Clusters[i].Centroid, ShouldResemble, res.Clusters[i].Centroid)
				}
				So(again.Inertia, ShouldEqual, res.Inertia)
			})
		})

		Convey("When fitting with several restarts", func() {
			multi, err := clustering.New(clustering.WithRestarts(5)).Fit(ctx, m, 2)
			So(err, ShouldBeNil)

			Convey("Then the kept run should be no worse than a single run", func() {
				So(multi.Inertia, ShouldBeLessThanOrEqualTo, res.Inertia)
			})
		})
	})

	Convey("Given rows that all coincide", t, func() {
		m := matrixOf([][]float64{{1, 1}, {1, 1}, {1, 1}})
		res, err := clustering.New().Fit(ctx, m, 2)
		So(err, ShouldBeNil)

		Convey("Then ties should go to the lowest cluster id and the other cluster stays empty", func() {
			So(res.Labels, ShouldResemble, []int{0, 0, 0})
			So(res.Clusters[1].Members, ShouldBeEmpty)
			So(res.Clusters[1].Centroid, ShouldResemble, []float64{1, 1})
			So(res.Inertia, ShouldEqual, 0)
		})
	})

	Convey("Given an iteration cap of one", t, func() {
		res, err := clustering.New(clustering.WithMaxIterations(1)).Fit(ctx, twoBlobs(), 2)

		Convey("Then the fit should stop without claiming convergence", func() {
			So(err, ShouldBeNil)
			So(res.Iterations, ShouldEqual, 1)
			So(res.Converged, ShouldBeFalse)
		})
	})

	Convey("Given invalid configuration", t, func() {
		m := twoBlobs()

		Convey("Then k <= 0, k > rows and a non-positive cap should be rejected", func() {
			_, err := clustering.New().Fit(ctx, m, 0)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)

			_, err = clustering.New().Fit(ctx, m, -3)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)

			_, err = clustering.New().Fit(ctx, m, m.Rows+1)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)

			_, err = clustering.New(clustering.WithMaxIterations(0)).Fit(ctx, m, 2)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Then k equal to the row count should be allowed", func() {
			res, err := clustering.New().Fit(ctx, m, m.Rows)
			So(err, ShouldBeNil)
			for _, c := range res.Clusters {
				So(len(c.Members), ShouldEqual, 1)
			}
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		res, err := clustering.New().Fit(cctx, twoBlobs(), 2)

		Convey("Then no partial result should be returned", func() {
			So(res, ShouldBeNil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestNearest(t *testing.T) {
	Convey("Given three centroids", t, func() {
		centroids := [][]float64{{0, 0}, {4, 0}, {0, 4}}

		Convey("When a row sits closest to one of them", func() {
			id, d := clustering.Nearest([]float64{3, 1}, centroids)

			Convey("Then that centroid and its squared distance should be returned", func() {
				So(id, ShouldEqual, 1)
				So(d, ShouldEqual, 2)
			})
		})

		Convey("When a row is equidistant from two centroids", func() {
			id, _ := clustering.Nearest([]float64{2, 2}, centroids)

			Convey("Then the lowest index should win", func() {
				So(id, ShouldEqual, 0)
			})
		})
	})
}
