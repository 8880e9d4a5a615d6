// Package encoding turns job records into a standardized numeric matrix.
//
// Each distinct location, job type and skill tag observed in the catalog gets
// one indicator column; the years of experience scalar is the last column.
// Every column is then centered and scaled with catalog-wide population
// statistics.
package encoding

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/dedupe"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/linalg"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Column name prefixes.
const (
	LocationPrefix = "location="
	JobTypePrefix  = "job_type="
	SkillPrefix    = "skill="
	ExperienceCol  = "years_of_experience"
)

// Params holds the column layout and per-column scaling of one encoding.
type Params struct {
	Columns []string
	Mean    []float64
	Std     []float64

	index map[string]int
}

// Width returns the number of columns.
func (p Params) Width() int {
	return len(p.Columns)
}

// Encode builds the standardized matrix for jobs. Rows follow catalog order.
func Encode(jobs []model.JobRecord) (*linalg.Matrix, Params, error) {
	if err := validate(jobs); err != nil {
		return nil, Params{}, err
	}

	params := layout(jobs)
	raw := linalg.NewMatrix(len(jobs), params.Width())
	for i, job := range jobs {
		params.fill(raw.Row(i), job)
	}

	params.Mean = make([]float64, raw.Cols)
	params.Std = make([]float64, raw.Cols)
	n := float64(raw.Rows)
	for j := 0; j < raw.Cols; j++ {
		mean := raw.ColumnMean(j)
		var ss float64
		for i := 0; i < raw.Rows; i++ {
			d := raw.At(i, j) - mean
			ss += d * d
		}
		params.Mean[j] = mean
		params.Std[j] = math.Sqrt(ss / n)
	}

	for i := 0; i < raw.Rows; i++ {
		params.scale(raw.Row(i))
	}
	return raw, params, nil
}

// Transform encodes one more record with the catalog's layout and scaling.
// Categorical values unseen in the catalog contribute nothing.
func (p Params) Transform(job model.JobRecord) ([]float64, error) {
	if p.index == nil {
		return nil, fmt.Errorf("%w: params not initialised", model.ErrEncoding)
	}
	if math.IsNaN(job.YearsOfExperience) || math.IsInf(job.YearsOfExperience, 0) {
		return nil, fmt.Errorf("%w: job %q has non-finite years of experience", model.ErrEncoding, job.ID)
	}
	row := make([]float64, p.Width())
	p.fill(row, job)
	p.scale(row)
	return row, nil
}

func validate(jobs []model.JobRecord) error {
	if len(jobs) == 0 {
		return fmt.Errorf("%w: empty catalog", model.ErrEncoding)
	}
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		if job.ID == "" {
			return fmt.Errorf("%w: job at row %d has no id", model.ErrEncoding, i)
		}
		if math.IsNaN(job.YearsOfExperience) || math.IsInf(job.YearsOfExperience, 0) {
			return fmt.Errorf("%w: job %q has non-finite years of experience", model.ErrEncoding, job.ID)
		}
		ids[i] = job.ID
	}
	if id, dup := dedupe.FirstDuplicate(context.Background(), ids); dup {
		return fmt.Errorf("%w: duplicate job id %q", model.ErrEncoding, id)
	}
	return nil
}

func layout(jobs []model.JobRecord) Params {
	locations := map[string]struct{}{}
	jobTypes := map[string]struct{}{}
	skills := map[string]struct{}{}
	for _, job := range jobs {
		locations[job.Location] = struct{}{}
		jobTypes[job.JobType] = struct{}{}
		for _, s := range cleanSkills(job.Skills) {
			skills[s] = struct{}{}
		}
	}

	var cols []string
	cols = append(cols, prefixed(LocationPrefix, locations)...)
	cols = append(cols, prefixed(JobTypePrefix, jobTypes)...)
	cols = append(cols, prefixed(SkillPrefix, skills)...)
	cols = append(cols, ExperienceCol)

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return Params{Columns: cols, index: index}
}

func prefixed(prefix string, set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, prefix+v)
	}
	sort.Strings(out)
	return out
}

func (p Params) fill(row []float64, job model.JobRecord) {
	if j, ok := p.index[LocationPrefix+job.Location]; ok {
		row[j] = 1
	}
	if j, ok := p.index[JobTypePrefix+job.JobType]; ok {
		row[j] = 1
	}
	for _, s := range cleanSkills(job.Skills) {
		if j, ok := p.index[SkillPrefix+s]; ok {
			row[j] = 1
		}
	}
	row[len(row)-1] = job.YearsOfExperience
}

// scale standardizes row in place. A column with no spread stays centered.
func (p Params) scale(row []float64) {
	for j := range row {
		row[j] -= p.Mean[j]
		if p.Std[j] > 0 {
			row[j] /= p.Std[j]
		}
	}
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
