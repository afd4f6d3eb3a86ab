package modelselection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neurogo/mvpa/pkg/errors"
)

// ParamSet is one point in a hyperparameter grid: a mapping from parameter
// name to candidate value.
type ParamSet map[string]interface{}

// Float returns the named parameter as a float64, converting integer
// values. Missing or non-numeric parameters are a ValueError.
func (p ParamSet) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, errors.NewValueError("ParamSet.Float", "missing parameter "+name)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, errors.NewValueError("ParamSet.Float",
			fmt.Sprintf("parameter %s is not numeric (got %T)", name, v))
	}
}

// Int returns the named parameter as an int. Missing or non-integer
// parameters are a ValueError.
func (p ParamSet) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, errors.NewValueError("ParamSet.Int", "missing parameter "+name)
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	default:
		return 0, errors.NewValueError("ParamSet.Int",
			fmt.Sprintf("parameter %s is not an integer (got %T)", name, v))
	}
}

// String renders the parameters with keys in sorted order, so equal sets
// always render identically.
func (p ParamSet) String() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, p[name])
	}
	return strings.Join(parts, ", ")
}

// clone returns a copy of the set so fold results never share maps.
func (p ParamSet) clone() ParamSet {
	out := make(ParamSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ParamGrid maps each parameter name to its ordered candidate values. The
// search space is the Cartesian product of all value lists.
type ParamGrid map[string][]interface{}

// Validate checks that every parameter has at least one candidate value.
func (g ParamGrid) Validate() error {
	for name, values := range g {
		if len(values) == 0 {
			return errors.NewValidationError(name, "parameter has no candidate values", values)
		}
	}
	return nil
}

// Size returns the number of candidates Candidates produces. An empty grid
// has exactly one candidate: the empty parameter set.
func (g ParamGrid) Size() int {
	size := 1
	for _, values := range g {
		size *= len(values)
	}
	return size
}

// Candidates enumerates the Cartesian product of the grid in a documented,
// deterministic order: parameter names are sorted ascending and the first
// name varies slowest (the last name cycles fastest, like nested loops).
// Search ties are broken by first occurrence in this order, so the order is
// part of the reproducibility contract.
func (g ParamGrid) Candidates() []ParamSet {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return []ParamSet{{}}
	}

	out := make([]ParamSet, 0, g.Size())
	idx := make([]int, len(names))
	for {
		candidate := make(ParamSet, len(names))
		for i, name := range names {
			candidate[name] = g[name][idx[i]]
		}
		out = append(out, candidate)

		// Odometer increment, last position fastest.
		pos := len(names) - 1
		for ; pos >= 0; pos-- {
			idx[pos]++
			if idx[pos] < len(g[names[pos]]) {
				break
			}
			idx[pos] = 0
		}
		if pos < 0 {
			return out
		}
	}
}
