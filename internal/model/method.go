package model

// ParamEntry is a single (parameter name, value) pair inside an ordered
// constraint or statement list. Declaration order matters: the method
// applicator (package apply) walks paramStatements in this order, and the
// placeholder-resolution rule of spec.md §4.4 depends on input iteration
// order.
type ParamEntry struct {
	Name  string
	Value ParameterValue
}

// ParamList is an ordered list of ParamEntry preserving catalogue
// declaration order, with map-like lookup.
type ParamList []ParamEntry

// Get returns the value bound to name and whether it was present.
func (l ParamList) Get(name string) (ParameterValue, bool) {
	for _, e := range l {
		if e.Name == name {
			return e.Value, true
		}
	}
	return ParameterValue{}, false
}

// MethodInput is (typeDefinition, paramConstraints, tune) per spec.md §3.
// Tune flags a parameter the engine never attempts to bind itself.
type MethodInput struct {
	Type            *TypeDefinition
	ParamConstraints ParamList
	Tune            bool
}

// MethodOutputPort is (typeDefinition, paramStatements) per spec.md §3.
// Placeholders in statements refer by name to placeholders appearing in
// the method's input constraints.
type MethodOutputPort struct {
	Type           *TypeDefinition
	ParamStatements ParamList
}

// NamedInput pairs a declared port name with its MethodInput, preserving
// declaration order.
type NamedInput struct {
	Name  string
	Input MethodInput
}

// NamedOutput pairs a declared port name with its MethodOutputPort,
// preserving declaration order.
type NamedOutput struct {
	Name   string
	Output MethodOutputPort
}

// Method is (name, inputs, outputs, optional description) per spec.md §3.
// The canonical single-branch form treats a method as deterministic: all
// outputs are produced together by a single application.
type Method struct {
	Name        string
	Description string
	Inputs      []NamedInput
	Outputs     []NamedOutput
}

// InputByName returns the declared input port with the given name.
func (m *Method) InputByName(name string) (MethodInput, bool) {
	for _, in := range m.Inputs {
		if in.Name == name {
			return in.Input, true
		}
	}
	return MethodInput{}, false
}

// NonTuningInputs returns the method's inputs in declaration order,
// excluding any flagged tune: true. The candidate-graph search (package
// plan) only ever enumerates bindings over these ports (spec.md §4.5).
func (m *Method) NonTuningInputs() []NamedInput {
	out := make([]NamedInput, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		if !in.Input.Tune {
			out = append(out, in)
		}
	}
	return out
}

// OutputCount returns the number of declared output ports, used by the
// edge-weight formula of spec.md §4.5 (1 + outputCount).
func (m *Method) OutputCount() int { return len(m.Outputs) }
