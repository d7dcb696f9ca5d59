package sampler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var descriptorPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*([\(\[])(.*)([\)\]])$`)

// Descriptor names a theoretical distribution and its positional parameters,
// written as "lognorm(0.5, 0, 10)" or "norm[10, 2]".
type Descriptor struct {
	Name   string
	Params []float64
}

func (d Descriptor) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return d.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ParseDescriptor parses a distribution descriptor.
func ParseDescriptor(raw string) (Descriptor, error) {
	trimmed := strings.TrimSpace(raw)
	m := descriptorPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidDescriptor, raw)
	}
	open, body, closing := m[2], strings.TrimSpace(m[3]), m[4]
	if (open == "(" && closing != ")") || (open == "[" && closing != "]") {
		return Descriptor{}, fmt.Errorf("%w: mismatched brackets in %q", ErrInvalidDescriptor, raw)
	}

	d := Descriptor{Name: strings.ToLower(m[1]), Params: []float64{}}
	if body == "" {
		return d, nil
	}
	for _, field := range strings.Split(body, ",") {
		field = strings.TrimSpace(field)
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: parameter %q in %q", ErrInvalidDescriptor, field, raw)
		}
		d.Params = append(d.Params, v)
	}
	return d, nil
}
