package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/repository"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func stores(t *testing.T) map[string]func() repository.Store {
	return map[string]func() repository.Store{
		"memory": func() repository.Store { return repository.NewMemoryStore() },
		"sqlite": func() repository.Store {
			s, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog", "jobs.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return s
		},
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, open := range stores(t) {
		Convey("Given an empty "+name+" store", t, func() {
			s := open()
			Reset(func() { _ = s.Close() })

			So(s.Count(ctx), ShouldEqual, 0)

			Convey("When putting jobs", func() {
				err := s.PutJobs(ctx, []model.JobRecord{
					{ID: "j2", Location: "Pune", JobType: "Full-Time", Skills: []string{"go", "sql"}, YearsOfExperience: 3},
					{ID: "j1", Location: "Delhi", JobType: "Contract", Skills: nil, YearsOfExperience: 7.5},
				})
				So(err, ShouldBeNil)

				Convey("Then they should come back in insertion order", func() {
					jobs, err := s.Jobs(ctx)
					So(err, ShouldBeNil)
					So(len(jobs), ShouldEqual, 2)
					So(jobs[0].ID, ShouldEqual, "j2")
					So(jobs[0].Skills, ShouldResemble, []string{"go", "sql"})
					So(jobs[1].Skills, ShouldBeEmpty)
					So(jobs[1].YearsOfExperience, ShouldEqual, 7.5)
					So(s.Count(ctx), ShouldEqual, 2)
				})

				Convey("And replacing a job should keep its position", func() {
					So(s.PutJobs(ctx, []model.JobRecord{{ID: "j2", Location: "Goa", JobType: "Part-Time", YearsOfExperience: 4}}), ShouldBeNil)
					jobs, _ := s.Jobs(ctx)
					So(len(jobs), ShouldEqual, 2)
					So(jobs[0].ID, ShouldEqual, "j2")
					So(jobs[0].Location, ShouldEqual, "Goa")
				})
			})

			Convey("When putting a job without id", func() {
				err := s.PutJobs(ctx, []model.JobRecord{{ID: ""}})

				Convey("Then it should be rejected", func() {
					So(errors.Is(err, repository.ErrInvalid), ShouldBeTrue)
					So(s.Count(ctx), ShouldEqual, 0)
				})
			})

			Convey("When putting candidates", func() {
				So(s.PutCandidates(ctx, []model.Candidate{
					{ID: "101", YearsOfExperience: 9, Location: "Pune", Skills: []string{"java"}},
					{ID: "102", YearsOfExperience: 1},
				}), ShouldBeNil)

				Convey("Then one can be looked up by id", func() {
					c, err := s.Candidate(ctx, "101")
					So(err, ShouldBeNil)
					So(c.YearsOfExperience, ShouldEqual, 9)
					So(c.Skills, ShouldResemble, []string{"java"})
				})

				Convey("Then an unknown id should be not found", func() {
					_, err := s.Candidate(ctx, "999")
					So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				})

				Convey("Then all should be listed in order", func() {
					all, err := s.Candidates(ctx)
					So(err, ShouldBeNil)
					So(len(all), ShouldEqual, 2)
					So(all[1].ID, ShouldEqual, "102")
				})
			})

			Convey("When saving assignments for a run", func() {
				So(s.PutJobs(ctx, []model.JobRecord{{ID: "a"}, {ID: "b"}}), ShouldBeNil)
				So(s.SaveAssignments(ctx, "run-1", []repository.Assignment{{JobID: "a", ClusterID: 1}, {JobID: "b", ClusterID: 0}}), ShouldBeNil)

				Convey("Then they should be readable by run id", func() {
					got, err := s.Assignments(ctx, "run-1")
					So(err, ShouldBeNil)
					So(got, ShouldResemble, []repository.Assignment{{JobID: "a", ClusterID: 1}, {JobID: "b", ClusterID: 0}})
				})

				Convey("Then another run should be not found", func() {
					_, err := s.Assignments(ctx, "run-2")
					So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				})

				Convey("Then an empty run id should be rejected", func() {
					So(errors.Is(s.SaveAssignments(ctx, "", nil), repository.ErrInvalid), ShouldBeTrue)
				})
			})
		})
	}
}

func TestSQLiteReopen(t *testing.T) {
	Convey("Given a SQLite store written and closed", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "jobs.db")

		s, err := repository.OpenSQLite(ctx, path)
		So(err, ShouldBeNil)
		So(s.PutJobs(ctx, []model.JobRecord{{ID: "x", Location: "L", JobType: "T", YearsOfExperience: 2}}), ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		Convey("When reopening the same file", func() {
			again, err := repository.OpenSQLite(ctx, path)
			So(err, ShouldBeNil)
			defer again.Close()

			Convey("Then the catalog should still be there", func() {
				So(again.Count(ctx), ShouldEqual, 1)
			})
		})
	})
}
