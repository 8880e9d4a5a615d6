package types_test

import (
	"encoding/json"
	"math"
	"testing"

	types "github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommendationJSON(t *testing.T) {
	Convey("Given a recommendation", t, func() {
		rec := types.Recommendation{
			RunID:      "run-1",
			Experience: 9,
			ClusterID:  1,
			LogDensity: -1.5,
			Scores:     []types.ClusterScore{{ClusterID: 0, LogDensity: -40}, {ClusterID: 1, LogDensity: -1.5}},
			Jobs:       []types.JobView{{ID: "j1", Location: "Pune", JobType: "Full-Time", Skills: []string{"go"}, YearsOfExperience: 10}},
		}

		Convey("When encoding it", func() {
			raw, err := json.Marshal(rec)
			So(err, ShouldBeNil)

			var out map[string]any
			So(json.Unmarshal(raw, &out), ShouldBeNil)

			Convey("Then the wire names should be snake case", func() {
				So(out["run_id"], ShouldEqual, "run-1")
				So(out["cluster_id"], ShouldEqual, 1.0)
				So(out["years_of_experience"], ShouldEqual, 9.0)
				So(out, ShouldContainKey, "scores")
				So(out["jobs"].([]any)[0].(map[string]any)["job_id"], ShouldEqual, "j1")
			})

			Convey("And an empty candidate id should be omitted", func() {
				So(out, ShouldNotContainKey, "candidate_id")
			})
		})
	})
}

func TestInfiniteLogDensityJSON(t *testing.T) {
	Convey("Given a recommendation where a point-mass cluster scored -Inf", t, func() {
		rec := types.Recommendation{
			ClusterID:  1,
			LogDensity: -2,
			Scores:     []types.ClusterScore{{ClusterID: 0, LogDensity: math.Inf(-1)}, {ClusterID: 1, LogDensity: -2}},
			Jobs:       []types.JobView{},
		}

		Convey("When encoding it", func() {
			raw, err := json.Marshal(rec)

			Convey("Then the infinite score should become null", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `{"cluster_id":0,"log_density":null}`)
				So(string(raw), ShouldContainSubstring, `"log_density":-2`)
			})
		})

		Convey("When every score is infinite", func() {
			rec.LogDensity = math.Inf(-1)
			raw, err := json.Marshal(rec)

			Convey("Then the chosen log-density should be null too", func() {
				So(err, ShouldBeNil)
				var out map[string]any
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out, ShouldContainKey, "log_density")
				So(out["log_density"], ShouldBeNil)
			})
		})
	})
}

func TestClusterSummaryJSON(t *testing.T) {
	Convey("Given cluster summaries", t, func() {
		Convey("When a cluster is not eligible", func() {
			raw, err := json.Marshal(types.ClusterSummary{ID: 2, Size: 1, JobIDs: []string{"j9"}})
			So(err, ShouldBeNil)

			Convey("Then mean, std and curve should be absent", func() {
				So(string(raw), ShouldNotContainSubstring, "mean")
				So(string(raw), ShouldNotContainSubstring, "std")
				So(string(raw), ShouldNotContainSubstring, "curve")
				So(string(raw), ShouldContainSubstring, `"eligible":false`)
			})
		})

		Convey("When a cluster is eligible with zero spread", func() {
			mean, std := 3.0, 0.0
			raw, err := json.Marshal(types.ClusterSummary{ID: 0, Size: 2, Eligible: true, Mean: &mean, Std: &std})
			So(err, ShouldBeNil)

			Convey("Then a zero std should still be reported", func() {
				So(string(raw), ShouldContainSubstring, `"std":0`)

				var back types.ClusterSummary
				So(json.Unmarshal(raw, &back), ShouldBeNil)
				So(*back.Mean, ShouldEqual, 3.0)
				So(*back.Std, ShouldEqual, 0.0)
			})
		})
	})
}
