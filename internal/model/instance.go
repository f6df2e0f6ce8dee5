package model

// TypeInstance is a TypeDefinition bound to a mapping of parameter name to
// parameter value, restricted to IntLiteral or EnumLiteral (spec.md §3).
// It is the canonical form of "an available artifact of a given type with
// some parameters pinned down". Value-typed: equality and hash are
// structural over (typeDefinition, paramValues).
type TypeInstance struct {
	Type   *TypeDefinition
	Params map[string]ParameterValue
}

// NewTypeInstance constructs a TypeInstance, copying params so the caller's
// map can be reused or mutated afterward.
func NewTypeInstance(t *TypeDefinition, params map[string]ParameterValue) TypeInstance {
	cp := make(map[string]ParameterValue, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return TypeInstance{Type: t, Params: cp}
}

// Key returns a canonical string uniquely identifying this instance's
// structural identity: type name + sorted (paramName, paramValue) pairs
// (spec.md §9 "Node identity by value"). Used for map keys and hashing.
func (ti TypeInstance) Key() string {
	return ti.Type.Name + "|" + paramMapKey(ti.Params)
}

// Equal reports structural equality: same type definition and identical
// parameter maps.
func (ti TypeInstance) Equal(o TypeInstance) bool {
	if !ti.Type.Equal(o.Type) {
		return false
	}
	if len(ti.Params) != len(o.Params) {
		return false
	}
	for k, v := range ti.Params {
		ov, ok := o.Params[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// FitsInputDescription reports whether ti satisfies input's description
// (spec.md §4.3 fitsInputDescription): the type definitions must match,
// and for every (paramName, constraint) in input.ParamConstraints:
//   - Placeholder constraints are skipped (they don't constrain at
//     match-time);
//   - Unset requires paramName to be absent from ti.Params;
//   - IntLiteral/EnumLiteral requires ti.Params[paramName] to exist and
//     compare equal.
func (ti TypeInstance) FitsInputDescription(input MethodInput) bool {
	if !ti.Type.Equal(input.Type) {
		return false
	}
	for _, c := range input.ParamConstraints {
		switch c.Value.Kind {
		case KindPlaceholder:
			continue
		case KindUnset:
			if _, present := ti.Params[c.Name]; present {
				return false
			}
		default: // KindInt, KindEnum
			v, present := ti.Params[c.Name]
			if !present || !v.Equal(c.Value) {
				return false
			}
		}
	}
	return true
}

// Subsumes reports whether a makes b redundant (spec.md §4.3 subsumes):
// same type definition, and every parameter binding in b is also present
// in a with the same value. a may carry additional pinned parameters.
func (a TypeInstance) Subsumes(b TypeInstance) bool {
	if !a.Type.Equal(b.Type) {
		return false
	}
	for k, v := range b.Params {
		av, ok := a.Params[k]
		if !ok || !av.Equal(v) {
			return false
		}
	}
	return true
}

// TargetDescription is a (typeDefinition, paramConstraints) pair
// describing an acceptable final artifact (spec.md GLOSSARY). It reuses
// MethodInput's shape since matching semantics are identical
// (FitsInputDescription accepts a MethodInput).
type TargetDescription struct {
	Type        *TypeDefinition
	Constraints ParamList
}

// AsInput adapts a TargetDescription to the MethodInput shape consumed by
// FitsInputDescription.
func (td TargetDescription) AsInput() MethodInput {
	return MethodInput{Type: td.Type, ParamConstraints: td.Constraints}
}
