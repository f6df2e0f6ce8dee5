// Package apply implements the method applicator of spec.md §4.4: given a
// method and a binding of each non-tuning input to a specific type
// instance, it computes the resulting TypeInstance for every output
// branch by parameter propagation.
package apply

import "github.com/ackbas/methodnet/internal/model"

// Binding maps an input port name to the TypeInstance bound to it.
type Binding map[string]model.TypeInstance

// Outputs maps an output port name to the TypeInstance it produces.
type Outputs map[string]model.TypeInstance

// Apply computes each output's TypeInstance for a method given a binding
// of its non-tuning inputs (spec.md §4.4):
//
//  1. For each output port O, start with an empty parameter map.
//  2. If some input port shares O's name, copy its TypeInstance's
//     parameter map into the accumulator first (name-matched structural
//     propagation) — applied before statements, per spec.md §9 "Name-
//     based parameter copying".
//  3. Walk O's paramStatements in declaration order:
//     - IntLiteral/EnumLiteral: assign literally, overwriting any
//       name-copied value.
//     - Placeholder(p): find the first input constraint (any port, any
//       parameter, in input declaration order) naming placeholder p;
//       if the bound instance has a value for that parameter, assign it;
//       otherwise leave the accumulator as name-copying left it.
//  4. Construct TypeInstance(O.Type, accumulator).
func Apply(m *model.Method, binding Binding) (Outputs, error) {
	results := make(Outputs, len(m.Outputs))
	for _, out := range m.Outputs {
		acc := map[string]model.ParameterValue{}

		if srcInst, ok := binding[out.Name]; ok {
			for k, v := range srcInst.Params {
				acc[k] = v
			}
		}

		for _, stmt := range out.Output.ParamStatements {
			switch stmt.Value.Kind {
			case model.KindInt, model.KindEnum:
				acc[stmt.Name] = stmt.Value
			case model.KindPlaceholder:
				if v, ok := resolvePlaceholder(m, binding, stmt.Value.Placeholder); ok {
					acc[stmt.Name] = v
				}
				// else: skip, accumulator keeps whatever name-matched
				// copying produced (possibly absent) — spec.md §4.4
				// edge-case policy.
			}
		}

		results[out.Name] = model.NewTypeInstance(out.Output.Type, acc)
	}
	return results, nil
}

// resolvePlaceholder searches the method's input constraints, in input
// declaration order, for the first constraint naming placeholder p. It
// then looks up the corresponding bound TypeInstance's value for that
// parameter. If two distinct input placeholders share a name, the first
// one encountered wins (spec.md §4.4 edge case; the catalogue should not
// permit this).
func resolvePlaceholder(m *model.Method, binding Binding, p string) (model.ParameterValue, bool) {
	for _, in := range m.Inputs {
		for _, c := range in.Input.ParamConstraints {
			if c.Value.Kind != model.KindPlaceholder || c.Value.Placeholder != p {
				continue
			}
			inst, ok := binding[in.Name]
			if !ok {
				return model.ParameterValue{}, false
			}
			v, ok := inst.Params[c.Name]
			return v, ok
		}
	}
	return model.ParameterValue{}, false
}
