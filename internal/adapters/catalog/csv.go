// Package catalog reads and writes job and candidate tables as CSV.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/dedupe"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Header names.
const (
	ColJobID       = "job_id"
	ColCandidateID = "candidate_id"
	ColLocation    = "location"
	ColJobType     = "job_type"
	ColSkills      = "skills"
	ColExperience  = "years_of_experience"
)

// JobColumns and CandidateColumns are the headers written by WriteJobs and
// WriteCandidates.
var (
	JobColumns       = []string{ColJobID, ColLocation, ColJobType, ColSkills, ColExperience}
	CandidateColumns = []string{ColCandidateID, ColExperience, ColLocation, ColSkills}
)

// ReadJobs parses a job table. Column order is taken from the header; extra
// columns are ignored.
func ReadJobs(r io.Reader) ([]model.JobRecord, error) {
	var jobs []model.JobRecord
	err := read(r, []string{ColJobID, ColLocation, ColJobType, ColSkills, ColExperience}, ColJobID,
		func(get func(string) string) error {
			years, err := parseYears(get(ColExperience))
			if err != nil {
				return err
			}
			jobs = append(jobs, model.JobRecord{
				ID:                get(ColJobID),
				Location:          get(ColLocation),
				JobType:           get(ColJobType),
				Skills:            SplitSkills(get(ColSkills)),
				YearsOfExperience: years,
			})
			return nil
		})
	return jobs, err
}

// ReadCandidates parses a candidate table. Location and skills are optional.
func ReadCandidates(r io.Reader) ([]model.Candidate, error) {
	var out []model.Candidate
	err := read(r, []string{ColCandidateID, ColExperience}, ColCandidateID,
		func(get func(string) string) error {
			years, err := parseYears(get(ColExperience))
			if err != nil {
				return err
			}
			out = append(out, model.Candidate{
				ID:                get(ColCandidateID),
				YearsOfExperience: years,
				Location:          get(ColLocation),
				Skills:            SplitSkills(get(ColSkills)),
			})
			return nil
		})
	return out, err
}

// SplitSkills splits a skill cell on ';', '|' or ','. Blank tags are dropped.
func SplitSkills(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WriteJobs writes jobs with a header row.
func WriteJobs(w io.Writer, jobs []model.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(JobColumns); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write([]string{
			j.ID, j.Location, j.JobType, strings.Join(j.Skills, ";"), formatYears(j.YearsOfExperience),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCandidates writes candidates with a header row.
func WriteCandidates(w io.Writer, candidates []model.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CandidateColumns); err != nil {
		return err
	}
	for _, c := range candidates {
		if err := cw.Write([]string{
			c.ID, formatYears(c.YearsOfExperience), c.Location, strings.Join(c.Skills, ";"),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func read(r io.Reader, required []string, idCol string, row func(get func(string) string) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: missing header", model.ErrEncoding)
	}
	if err != nil {
		return fmt.Errorf("%w: header: %v", model.ErrEncoding, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return fmt.Errorf("%w: missing column %q", model.ErrEncoding, c)
		}
	}

	seen := dedupe.NewInMemoryDeduper()
	ctx := context.Background()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", model.ErrEncoding, err)
		}
		line, _ := cr.FieldPos(0)
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		id := get(idCol)
		if id == "" {
			return fmt.Errorf("%w: line %d: empty %s", model.ErrEncoding, line, idCol)
		}
		if seen.SeenAndRecord(ctx, id) {
			return fmt.Errorf("%w: line %d: duplicate %s %q", model.ErrEncoding, line, idCol, id)
		}
		if err := row(get); err != nil {
			return fmt.Errorf("%w: line %d: %v", model.ErrEncoding, line, err)
		}
	}
}

func parseYears(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("years of experience %q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("years of experience %q is not finite", s)
	}
	return v, nil
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
