package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes tags such as the grid shape.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value a simulation was built with.
type Parameter struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Type  ParamType `json:"type"`
	Value string    `json:"value"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
}

// ParameterSnapshot captures the tunables a grid is running with.
type ParameterSnapshot struct {
	Groups []ParameterGroup `json:"groups"`
}

// Parameters reports the grid layout followed by the rule's own tunables.
func (g *Grid) Parameters() ParameterSnapshot {
	groups := []ParameterGroup{{
		Name: "Grid",
		Params: []Parameter{
			StringParam("variant", "Variant", g.rule.Variant().String()),
			IntParam("rows", "Rows", g.topo.Rows),
			IntParam("cols", "Columns", g.topo.Cols),
			StringParam("shape", "Shape", g.shape.String()),
			StringParam("neighbors", "Neighbors", g.topo.Kind.String()),
			StringParam("ordering", "Update ordering", g.rule.Ordering().String()),
		},
	}}
	if p, ok := g.rule.(ParameterProvider); ok {
		groups = append(groups, p.Parameters()...)
	}
	return ParameterSnapshot{Groups: groups}
}

// Lookup returns the value of key across all groups.
func (s ParameterSnapshot) Lookup(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}

// IntParam builds an integer Parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// FloatParam builds a floating-point Parameter.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// StringParam builds a string Parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}

// Param returns params[key], or def when the key is absent.
func Param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

// RequireParam returns params[key] or a ConfigError naming the missing key.
func RequireParam(v Variant, params map[string]float64, key string) (float64, error) {
	val, ok := params[key]
	if !ok {
		return 0, Configf(key, "%s requires parameter %q", v, key)
	}
	return val, nil
}

// Probability validates that p lies in [0, 1].
func Probability(key string, p float64) error {
	if p < 0 || p > 1 {
		return Configf(key, "probability %g outside [0,1]", p)
	}
	return nil
}
