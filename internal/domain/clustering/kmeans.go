// Package clustering partitions standardized vectors with seeded k-means.
package clustering

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/linalg"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// Default engine configuration.
const (
	DefaultSeed          = 42
	DefaultMaxIterations = 300
	DefaultRestarts      = 1
)

// Cluster is one group of a finished fit. Members are row indices in
// ascending order.
type Cluster struct {
	ID       int
	Centroid []float64
	Members  []int
}

// Result is the outcome of Fit. Labels[i] is the cluster of row i.
type Result struct {
	Labels     []int
	Clusters   []Cluster
	Iterations int
	Converged  bool
	Inertia    float64
}

// Engine runs k-means. It holds configuration only and may be reused.
type Engine struct {
	seed          int64
	maxIterations int
	restarts      int
	log           logger.Logger
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		seed:          DefaultSeed,
		maxIterations: DefaultMaxIterations,
		restarts:      DefaultRestarts,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit clusters the rows of m into k groups. Identical input and options
// always give identical output.
func (e *Engine) Fit(ctx context.Context, m *linalg.Matrix, k int) (*Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: cluster count must be positive, got %d", model.ErrConfiguration, k)
	}
	if m == nil || k > m.Rows {
		rows := 0
		if m != nil {
			rows = m.Rows
		}
		return nil, fmt.Errorf("%w: cluster count %d exceeds %d records", model.ErrConfiguration, k, rows)
	}
	if e.maxIterations <= 0 {
		return nil, fmt.Errorf("%w: iteration cap must be positive, got %d", model.ErrConfiguration, e.maxIterations)
	}

	rng := rand.New(rand.NewSource(e.seed)) //nolint:gosec // reproducible clustering

	var best *Result
	for r := 0; r < e.restarts; r++ {
		res, err := e.run(ctx, m, k, rng)
		if err != nil {
			return nil, err
		}
		e.log.Debug(ctx, "k-means run finished",
			logger.Int("restart", r),
			logger.Int("iterations", res.Iterations),
			logger.Bool("converged", res.Converged),
			logger.Float64("inertia", res.Inertia))
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

func (e *Engine) run(ctx context.Context, m *linalg.Matrix, k int, rng *rand.Rand) (*Result, error) {
	centroids := seedCentroids(m, k, rng)
	labels := make([]int, m.Rows)
	for i := range labels {
		labels[i] = -1
	}

	res := &Result{Labels: labels}
	for it := 1; it <= e.maxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed := assign(m, centroids, labels)
		res.Iterations = it
		if !changed {
			res.Converged = true
			break
		}
		update(m, centroids, labels)
	}

	res.Clusters = make([]Cluster, k)
	for c := range res.Clusters {
		res.Clusters[c] = Cluster{ID: c, Centroid: centroids[c], Members: []int{}}
	}
	for i, c := range labels {
		res.Clusters[c].Members = append(res.Clusters[c].Members, i)
		res.Inertia += linalg.SquaredDistance(m.Row(i), centroids[c])
	}
	return res, nil
}

// seedCentroids picks k rows with k-means++ weighting. When every remaining
// row coincides with a chosen centroid the lowest unchosen row is used.
func seedCentroids(m *linalg.Matrix, k int, rng *rand.Rand) [][]float64 {
	chosen := make([]bool, m.Rows)
	centroids := make([][]float64, 0, k)
	pick := func(i int) {
		chosen[i] = true
		c := make([]float64, m.Cols)
		copy(c, m.Row(i))
		centroids = append(centroids, c)
	}

	pick(rng.Intn(m.Rows))

	weights := make([]float64, m.Rows)
	for i := range weights {
		weights[i] = math.Inf(1)
	}
	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		var total float64
		for i := range weights {
			if chosen[i] {
				weights[i] = 0
				continue
			}
			if d := linalg.SquaredDistance(m.Row(i), last); d < weights[i] {
				weights[i] = d
			}
			total += weights[i]
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i, w := range weights {
				if w == 0 {
					continue
				}
				acc += w
				next = i
				if acc > target {
					break
				}
			}
		} else {
			for i, c := range chosen {
				if !c {
					next = i
					break
				}
			}
		}
		pick(next)
	}
	return centroids
}

// assign moves every row to its nearest centroid, lowest id on exact ties,
// and reports whether any label changed.
func assign(m *linalg.Matrix, centroids [][]float64, labels []int) bool {
	changed := false
	for i := 0; i < m.Rows; i++ {
		best, _ := Nearest(m.Row(i), centroids)
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// Nearest returns the index of the centroid closest to row and the squared
// distance to it. Exact ties go to the lowest index. centroids must not be
// empty.
func Nearest(row []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, linalg.SquaredDistance(row, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := linalg.SquaredDistance(row, centroids[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// update recomputes each centroid as its members' mean. Empty clusters keep
// their previous centroid.
func update(m *linalg.Matrix, centroids [][]float64, labels []int) {
	members := make([][]int, len(centroids))
	for i, c := range labels {
		members[c] = append(members[c], i)
	}
	for c := range centroids {
		linalg.MeanOf(m, members[c], centroids[c])
	}
}
