// Package model implements the parametric type/value model of spec.md §3:
// parameter types, parameter values, type definitions, methods, the
// knowledge graph that holds them, and the type-instance predicates used by
// the search in package plan.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IntTypeName is the name of the single built-in opaque integer parameter
// type. It is seeded into every KnowledgeGraph's parameter-type registry by
// the catalogue loader.
const IntTypeName = "Int"

// ParameterType is either the built-in opaque integer type ("Int", when
// Values is nil) or an enumeration carrying a name and an ordered list of
// distinct symbolic values. Enumerations are identified by name; equality
// is by name (spec.md §3).
type ParameterType struct {
	Name   string
	Values []string // nil for Int
}

// IsEnum reports whether this parameter type is an enumeration.
func (t *ParameterType) IsEnum() bool { return t.Values != nil }

// IndexOf returns the index of value in the enum's ordered value list, or
// -1 if value is not a member.
func (t *ParameterType) IndexOf(value string) int {
	for i, v := range t.Values {
		if v == value {
			return i
		}
	}
	return -1
}

// ParameterDefinition is a (name, ParameterType) pair belonging to a type
// definition. Order is not semantically meaningful but the name is.
type ParameterDefinition struct {
	Name string
	Type *ParameterType
}

// ValueKind tags the variant held by a ParameterValue.
type ValueKind int

const (
	// KindInt is an integer constant.
	KindInt ValueKind = iota
	// KindEnum is one member of an EnumType, held as an index into its
	// ordered value list.
	KindEnum
	// KindPlaceholder is a method-local identifier, valid only inside a
	// single method definition's input constraints and output statements.
	KindPlaceholder
	// KindUnset is the sentinel meaning "this parameter must be absent",
	// valid only inside input constraints.
	KindUnset
)

// ParameterValue is the tagged union described in spec.md §3: IntLiteral,
// EnumLiteral, Placeholder, or Unset. Zero value is the integer literal 0;
// callers should always construct values through the New* helpers.
type ParameterValue struct {
	Kind        ValueKind
	Int         int
	EnumType    *ParameterType
	EnumIndex   int
	Placeholder string
}

// NewIntLiteral builds an IntLiteral value.
func NewIntLiteral(n int) ParameterValue { return ParameterValue{Kind: KindInt, Int: n} }

// NewEnumLiteral builds an EnumLiteral value for the given enum member
// index. Callers must have already validated the index against enumType.
func NewEnumLiteral(enumType *ParameterType, index int) ParameterValue {
	return ParameterValue{Kind: KindEnum, EnumType: enumType, EnumIndex: index}
}

// NewPlaceholder builds a Placeholder value.
func NewPlaceholder(name string) ParameterValue {
	return ParameterValue{Kind: KindPlaceholder, Placeholder: name}
}

// Unset is the sentinel ParameterValue meaning "this parameter is absent".
var Unset = ParameterValue{Kind: KindUnset}

// Equal reports structural equality between two ParameterValues. Two enum
// literals are equal iff they name the same enum type and the same index;
// placeholders are equal iff their names match (the search never compares
// placeholders).
func (v ParameterValue) Equal(o ParameterValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindEnum:
		return v.EnumType != nil && o.EnumType != nil && v.EnumType.Name == o.EnumType.Name && v.EnumIndex == o.EnumIndex
	case KindPlaceholder:
		return v.Placeholder == o.Placeholder
	case KindUnset:
		return true
	}
	return false
}

// EnumValueName returns the symbolic name of an enum literal.
func (v ParameterValue) EnumValueName() string {
	if v.Kind != KindEnum || v.EnumType == nil || v.EnumIndex < 0 || v.EnumIndex >= len(v.EnumType.Values) {
		return ""
	}
	return v.EnumType.Values[v.EnumIndex]
}

// Render produces the external string rendering of spec.md §6:
// IntLiteral n -> decimal string; EnumLiteral -> "EnumName.ValueName";
// Placeholder(p) -> "$p"; Unset -> "unset".
func (v ParameterValue) Render() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindEnum:
		return fmt.Sprintf("%s.%s", v.EnumType.Name, v.EnumValueName())
	case KindPlaceholder:
		return "$" + v.Placeholder
	case KindUnset:
		return "unset"
	}
	return ""
}

func (v ParameterValue) String() string { return v.Render() }

// sortedParamKeys returns the keys of a parameter-value map in
// lexicographic order, used wherever a stable hash or stable string needs
// an order-independent traversal of a paramValues map.
func sortedParamKeys(m map[string]ParameterValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// paramMapKey renders a paramValues map into a canonical string used for
// structural hashing of TypeInstance and CandidateNode (spec.md "Node
// identity by value" in §9): type identity by name + sorted (paramName,
// paramValue) pairs.
func paramMapKey(m map[string]ParameterValue) string {
	var b strings.Builder
	for _, k := range sortedParamKeys(m) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k].Render())
		b.WriteByte(';')
	}
	return b.String()
}
