package sampler

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// Empirical resamples a fixed set of observations through their inverse
// empirical CDF, interpolating linearly between neighbouring observations.
type Empirical struct {
	sorted []float64
	src    random.Source
}

// NewEmpirical copies and sorts samples.
func NewEmpirical(samples []float64, src random.Source) (*Empirical, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return &Empirical{sorted: sorted, src: src}, nil
}

func (e *Empirical) Sample() float64 {
	return stat.Quantile(e.src.Float64(), stat.LinInterp, e.sorted, nil)
}

func (e *Empirical) String() string {
	return fmt.Sprintf("empirical(n=%d)", len(e.sorted))
}

// Len returns the number of observations.
func (e *Empirical) Len() int {
	return len(e.sorted)
}

// LoadSamples reads one floating-point value per line. Blank lines are
// skipped.
func LoadSamples(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampler: open samples: %w", err)
	}
	defer f.Close()

	var out []float64
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("sampler: %s:%d: %w", path, line, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sampler: %s:%d: non-finite sample %q", path, line, raw)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sampler: read samples: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSamples, path)
	}
	return out, nil
}

// LoadEmpirical loads path and binds the samples to src.
func LoadEmpirical(path string, src random.Source) (*Empirical, error) {
	samples, err := LoadSamples(path)
	if err != nil {
		return nil, err
	}
	return NewEmpirical(samples, src)
}
