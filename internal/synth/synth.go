// Package synth generates seeded synthetic job catalogs and candidates for
// demos and tests. Jobs are drawn from experience bands; each band has its
// own skill pool so clusters have something to find.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Default generator settings.
const (
	defaultJobs          = 200
	defaultCandidates    = 20
	defaultSeed          = 42
	firstCandidateID     = 101
	candidateMinYears    = 1
	candidateMaxYears    = 20
	maxSkillsPerJob      = 3
	experienceResolution = 10 // years are rounded to one decimal
)

// Band is an experience range with the skills typical for it.
type Band struct {
	Name     string
	MinYears float64
	MaxYears float64
	Skills   []string
}

// DefaultBands covers entry, mid and senior level postings.
var DefaultBands = []Band{
	{Name: "entry", MinYears: 0, MaxYears: 2, Skills: []string{"Excel", "SQL", "Python", "Communication"}},
	{Name: "mid", MinYears: 3, MaxYears: 6, Skills: []string{"Python", "Java", "Docker", "AWS"}},
	{Name: "senior", MinYears: 8, MaxYears: 12, Skills: []string{"Leadership", "Architecture", "Kubernetes", "Go"}},
	{Name: "principal", MinYears: 14, MaxYears: 20, Skills: []string{"Strategy", "Leadership", "Mentoring"}},
}

// Locations and JobTypes are the categorical vocabularies.
var (
	Locations = []string{"Bangalore", "Pune", "Delhi", "Hyderabad", "Chennai", "Mumbai"}
	JobTypes  = []string{"Full-Time", "Part-Time", "Contract", "Remote"}
)

// Config controls a generation run.
type Config struct {
	Jobs       int
	Candidates int
	Seed       int64
	Bands      []Band
}

// DefaultConfig returns the default generator settings.
func DefaultConfig() Config {
	return Config{
		Jobs:       defaultJobs,
		Candidates: defaultCandidates,
		Seed:       defaultSeed,
		Bands:      DefaultBands,
	}
}

// Generator produces catalogs from one seeded source.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a generator. Zero fields of cfg fall back to defaults.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Jobs <= 0 {
		cfg.Jobs = def.Jobs
	}
	if cfg.Candidates <= 0 {
		cfg.Candidates = def.Candidates
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if len(cfg.Bands) == 0 {
		cfg.Bands = def.Bands
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))} //nolint:gosec // reproducible data
}

// Jobs generates the job catalog, cycling through the bands so each gets an
// equal share.
func (g *Generator) Jobs() []model.JobRecord {
	jobs := make([]model.JobRecord, g.cfg.Jobs)
	for i := range jobs {
		band := g.cfg.Bands[i%len(g.cfg.Bands)]
		jobs[i] = model.JobRecord{
			ID:                fmt.Sprintf("J%04d", i+1),
			Location:          Locations[g.rng.Intn(len(Locations))],
			JobType:           JobTypes[g.rng.Intn(len(JobTypes))],
			Skills:            g.pickSkills(band.Skills),
			YearsOfExperience: g.years(band.MinYears, band.MaxYears),
		}
	}
	return jobs
}

// Candidates generates candidates with ids starting at 101.
func (g *Generator) Candidates() []model.Candidate {
	all := allSkills(g.cfg.Bands)
	out := make([]model.Candidate, g.cfg.Candidates)
	for i := range out {
		out[i] = model.Candidate{
			ID:                fmt.Sprintf("%d", firstCandidateID+i),
			YearsOfExperience: g.years(candidateMinYears, candidateMaxYears),
			Location:          Locations[g.rng.Intn(len(Locations))],
			Skills:            g.pickSkills(all),
		}
	}
	return out
}

func (g *Generator) years(lo, hi float64) float64 {
	v := lo + g.rng.Float64()*(hi-lo)
	return math.Round(v*experienceResolution) / experienceResolution
}

func (g *Generator) pickSkills(pool []string) []string {
	if len(pool) == 0 {
		return []string{}
	}
	n := 1 + g.rng.Intn(min(maxSkillsPerJob, len(pool)))
	idx := g.rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func allSkills(bands []Band) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range bands {
		for _, s := range b.Skills {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
