package sampler

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// family maps a distribution name onto gonum. Parameters follow the
// shape..., loc, scale convention; loc and scale default to 0 and 1.
type family struct {
	shapes int
	build  func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error)
}

var families = map[string]family{
	"norm": {shapes: 0, build: func(_ []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		d := distuv.Normal{Mu: loc, Sigma: scale, Src: src}
		return d.Rand, nil
	}},
	"lognorm": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("lognorm s", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.LogNormal{Mu: math.Log(scale), Sigma: shape[0], Src: src}
		return shifted(d.Rand, loc, 1), nil
	}},
	"expon": {shapes: 0, build: func(_ []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		d := distuv.Exponential{Rate: 1 / scale, Src: src}
		return shifted(d.Rand, loc, 1), nil
	}},
	"gamma": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("gamma a", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.Gamma{Alpha: shape[0], Beta: 1 / scale, Src: src}
		return shifted(d.Rand, loc, 1), nil
	}},
	"weibull_min": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("weibull_min c", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.Weibull{K: shape[0], Lambda: scale, Src: src}
		return shifted(d.Rand, loc, 1), nil
	}},
	"uniform": {shapes: 0, build: func(_ []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		d := distuv.Uniform{Min: loc, Max: loc + scale, Src: src}
		return d.Rand, nil
	}},
	"beta": {shapes: 2, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("beta a", shape[0]); err != nil {
			return nil, err
		}
		if err := positive("beta b", shape[1]); err != nil {
			return nil, err
		}
		d := distuv.Beta{Alpha: shape[0], Beta: shape[1], Src: src}
		return shifted(d.Rand, loc, scale), nil
	}},
	"triang": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		c := shape[0]
		if c < 0 || c > 1 {
			return nil, fmt.Errorf("%w: triang c=%v outside [0, 1]", ErrInvalidDescriptor, c)
		}
		d := distuv.NewTriangle(loc, loc+scale, loc+c*scale, src)
		return d.Rand, nil
	}},
	"pareto": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("pareto b", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.Pareto{Xm: scale, Alpha: shape[0], Src: src}
		return shifted(d.Rand, loc, 1), nil
	}},
	"laplace": {shapes: 0, build: func(_ []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		d := distuv.Laplace{Mu: loc, Scale: scale, Src: src}
		return d.Rand, nil
	}},
	"gumbel_r": {shapes: 0, build: func(_ []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		d := distuv.GumbelRight{Mu: loc, Beta: scale, Src: src}
		return d.Rand, nil
	}},
	"chi2": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("chi2 df", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.ChiSquared{K: shape[0], Src: src}
		return shifted(d.Rand, loc, scale), nil
	}},
	"t": {shapes: 1, build: func(shape []float64, loc, scale float64, src rand.Source) (func() float64, error) {
		if err := positive("t df", shape[0]); err != nil {
			return nil, err
		}
		d := distuv.StudentsT{Mu: loc, Sigma: scale, Nu: shape[0], Src: src}
		return d.Rand, nil
	}},
}

// Names lists the supported theoretical distributions in sorted order.
func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theoretical samples a named parametric distribution.
type Theoretical struct {
	desc Descriptor
	draw func() float64
}

// NewTheoretical binds a descriptor to src. The descriptor is checked once
// here and never looked up again.
func NewTheoretical(desc Descriptor, src rand.Source) (*Theoretical, error) {
	fam, ok := families[desc.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownDistribution, desc.Name, strings.Join(Names(), ", "))
	}
	n := len(desc.Params)
	if n < fam.shapes || n > fam.shapes+2 {
		return nil, fmt.Errorf("%w: %s takes %d to %d parameters, got %d",
			ErrInvalidDescriptor, desc.Name, fam.shapes, fam.shapes+2, n)
	}
	for _, p := range desc.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: non-finite parameter in %s", ErrInvalidDescriptor, desc)
		}
	}

	loc, scale := 0.0, 1.0
	if n > fam.shapes {
		loc = desc.Params[fam.shapes]
	}
	if n > fam.shapes+1 {
		scale = desc.Params[fam.shapes+1]
	}
	if err := positive(desc.Name+" scale", scale); err != nil {
		return nil, err
	}

	draw, err := fam.build(desc.Params[:fam.shapes], loc, scale, src)
	if err != nil {
		return nil, err
	}
	return &Theoretical{desc: desc, draw: draw}, nil
}

func (t *Theoretical) Sample() float64 {
	return t.draw()
}

func (t *Theoretical) String() string {
	return t.desc.String()
}

func shifted(draw func() float64, loc, scale float64) func() float64 {
	return func() float64 {
		return loc + scale*draw()
	}
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidDescriptor, name, v)
	}
	return nil
}
