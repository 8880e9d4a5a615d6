package service_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/catalog"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/repository"
	service "github.com/sankhaXjack/JOB-RECOMANDATION/internal/app"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/synth"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service backed by SQLite", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := repository.OpenSQLite(ctx, filepath.Join(t.TempDir(), "jobrec.db"))
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		svc := service.New(
			service.WithStore(store),
			service.WithWorkerCount(2),
			service.WithQueueSize(100),
			service.WithPipelineConfig(twoClusterConfig()),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop(ctx)

		Convey("When the service is stopped and started again", func() {
			So(store.PutJobs(ctx, twoBandJobs()), ShouldBeNil)
			first, err := svc.Rebuild(ctx)
			So(err, ShouldBeNil)

			svc.Stop(ctx)
			So(store.Count(ctx), ShouldEqual, 20)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the store should still serve rebuilds and batches", func() {
				second := svc.Snapshot()
				So(second, ShouldNotBeNil)
				So(second.RunID, ShouldNotEqual, first.RunID)
				So(len(second.Jobs), ShouldEqual, 20)

				outcomes, err := svc.MatchBatch(ctx, []model.Candidate{{ID: "101", YearsOfExperience: 9}})
				So(err, ShouldBeNil)
				So(outcomes[0].Err, ShouldBeNil)
				So(len(outcomes[0].Recommendation.Jobs), ShouldEqual, 10)

				_, err = svc.Assignments(ctx, first.RunID.String())
				So(err, ShouldBeNil)
			})
		})

		Convey("When importing a jobs CSV and rebuilding", func() {
			var buf bytes.Buffer
			So(catalog.WriteJobs(&buf, twoBandJobs()), ShouldBeNil)
			n, err := svc.ImportJobs(ctx, &buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 20)

			snap, err := svc.Rebuild(ctx)
			So(err, ShouldBeNil)

			Convey("Then a batch should be answered in input order", func() {
				candidates := []model.Candidate{
					{ID: "101", YearsOfExperience: 2},
					{ID: "102", YearsOfExperience: 9},
					{ID: "103", YearsOfExperience: 10.5},
				}
				outcomes, err := svc.MatchBatch(ctx, candidates)
				So(err, ShouldBeNil)
				So(len(outcomes), ShouldEqual, 3)

				junior, _ := snap.Label("junior-0")
				senior, _ := snap.Label("senior-0")
				for i, o := range outcomes {
					So(o.Err, ShouldBeNil)
					So(o.Recommendation.CandidateID, ShouldEqual, candidates[i].ID)
				}
				So(outcomes[0].Recommendation.ClusterID, ShouldEqual, junior)
				So(outcomes[1].Recommendation.ClusterID, ShouldEqual, senior)
				So(outcomes[2].Recommendation.ClusterID, ShouldEqual, senior)
			})

			Convey("Then a failing candidate should carry its own error", func() {
				outcomes, err := svc.MatchBatch(ctx, []model.Candidate{
					{ID: "ok", YearsOfExperience: 3},
					{ID: "bad", YearsOfExperience: math.NaN()},
				})
				So(err, ShouldBeNil)
				So(outcomes[0].Err, ShouldBeNil)
				So(errors.Is(outcomes[1].Err, model.ErrConfiguration), ShouldBeTrue)
			})

			Convey("Then stored candidates should be recommended by id", func() {
				_, err := svc.ImportCandidates(ctx, strings.NewReader("candidate_id,years_of_experience\n101,9\n"))
				So(err, ShouldBeNil)

				rec, err := svc.RecommendForCandidate(ctx, "101")
				So(err, ShouldBeNil)
				senior, _ := snap.Label("senior-0")
				So(rec.ClusterID, ShouldEqual, senior)

				_, err = svc.RecommendForCandidate(ctx, "missing")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And the catalog grows and is rebuilt", func() {
				old := snap
				before, err := old.Match(model.Candidate{YearsOfExperience: 9})
				So(err, ShouldBeNil)

				So(svc.Store().PutJobs(ctx, []model.JobRecord{
					{ID: "late-1", Location: "Delhi", JobType: "Remote", YearsOfExperience: 9.5},
					{ID: "late-2", Location: "Delhi", JobType: "Remote", YearsOfExperience: 10.5},
				}), ShouldBeNil)
				fresh, err := svc.Rebuild(ctx)
				So(err, ShouldBeNil)

				Convey("Then the old snapshot should be untouched", func() {
					So(len(old.Jobs), ShouldEqual, 20)
					after, err := old.Match(model.Candidate{YearsOfExperience: 9})
					So(err, ShouldBeNil)
					So(after, ShouldResemble, before)
				})

				Convey("Then the service should serve the new snapshot", func() {
					So(svc.Snapshot(), ShouldEqual, fresh)
					So(fresh.RunID, ShouldNotEqual, old.RunID)
					So(len(fresh.Jobs), ShouldEqual, 22)
				})
			})
		})

		Convey("When a CSV has a bad row", func() {
			_, err := svc.ImportJobs(ctx, strings.NewReader(
				"job_id,location,job_type,skills,years_of_experience\nj1,Pune,Remote,Go,abc\n"))

			Convey("Then the import should fail with an encoding error", func() {
				So(errors.Is(err, model.ErrEncoding), ShouldBeTrue)
				So(svc.Store().Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given seed files produced by the generator", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		gen := synth.New(synth.DefaultConfig())

		jobsPath := filepath.Join(dir, "jobs.csv")
		candidatesPath := filepath.Join(dir, "candidates.csv")
		writeCSV(jobsPath, func(f *os.File) error { return catalog.WriteJobs(f, gen.Jobs()) })
		writeCSV(candidatesPath, func(f *os.File) error { return catalog.WriteCandidates(f, gen.Candidates()) })

		svc := service.New(service.WithSeedFiles(jobsPath, candidatesPath), service.WithWorkerCount(1))

		Convey("When the service starts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop(ctx)

			Convey("Then the catalog should be imported and clustered", func() {
				So(svc.Store().Count(ctx), ShouldEqual, 200)
				So(svc.Snapshot(), ShouldNotBeNil)

				rec, err := svc.RecommendForCandidate(ctx, "101")
				So(err, ShouldBeNil)
				So(rec.Jobs, ShouldNotBeEmpty)
			})
		})

		Convey("When a seed file is missing", func() {
			missing := service.New(service.WithSeedFiles(filepath.Join(dir, "nope.csv"), ""))

			Convey("Then start should fail", func() {
				So(missing.Start(ctx), ShouldNotBeNil)
			})
		})
	})
}

func writeCSV(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	So(err, ShouldBeNil)
	defer f.Close()
	So(write(f), ShouldBeNil)
}
