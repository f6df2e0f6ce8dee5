package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intType() *TypeDefinition {
	return &TypeDefinition{Name: "Widget", Params: map[string]ParameterDefinition{
		"Size":  {Name: "Size", Type: &ParameterType{Name: "Int"}},
		"Color": {Name: "Color", Type: &ParameterType{Name: "Color", Values: []string{"Red", "Green"}}},
	}}
}

func TestFitsInputDescription(t *testing.T) {
	td := intType()
	color := td.Params["Color"].Type

	t.Run("placeholder constraints never reject", func(t *testing.T) {
		ti := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5)})
		input := MethodInput{Type: td, ParamConstraints: ParamList{{Name: "Size", Value: NewPlaceholder("n")}}}
		require.True(t, ti.FitsInputDescription(input))
	})

	t.Run("unset constraint requires absence", func(t *testing.T) {
		present := NewTypeInstance(td, map[string]ParameterValue{"Color": NewEnumLiteral(color, 0)})
		absent := NewTypeInstance(td, map[string]ParameterValue{})
		input := MethodInput{Type: td, ParamConstraints: ParamList{{Name: "Color", Value: Unset}}}
		require.False(t, present.FitsInputDescription(input))
		require.True(t, absent.FitsInputDescription(input))
	})

	t.Run("literal constraint requires presence and equality", func(t *testing.T) {
		ti := NewTypeInstance(td, map[string]ParameterValue{"Color": NewEnumLiteral(color, 1)})
		wantGreen := MethodInput{Type: td, ParamConstraints: ParamList{{Name: "Color", Value: NewEnumLiteral(color, 1)}}}
		wantRed := MethodInput{Type: td, ParamConstraints: ParamList{{Name: "Color", Value: NewEnumLiteral(color, 0)}}}
		require.True(t, ti.FitsInputDescription(wantGreen))
		require.False(t, ti.FitsInputDescription(wantRed))
	})

	t.Run("mismatched type definition never fits", func(t *testing.T) {
		other := &TypeDefinition{Name: "Other"}
		ti := NewTypeInstance(td, map[string]ParameterValue{})
		require.False(t, ti.FitsInputDescription(MethodInput{Type: other}))
	})
}

func TestSubsumes(t *testing.T) {
	td := intType()
	color := td.Params["Color"].Type

	t.Run("a wider instance subsumes a narrower one", func(t *testing.T) {
		a := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5), "Color": NewEnumLiteral(color, 0)})
		b := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5)})
		require.True(t, a.Subsumes(b))
		require.False(t, b.Subsumes(a))
	})

	t.Run("conflicting pinned values never subsume", func(t *testing.T) {
		a := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5)})
		b := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(6)})
		require.False(t, a.Subsumes(b))
	})

	t.Run("equal instances subsume each other", func(t *testing.T) {
		a := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5)})
		b := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(5)})
		require.True(t, a.Subsumes(b))
		require.True(t, b.Subsumes(a))
	})
}

func TestTypeInstanceKeyIsStructural(t *testing.T) {
	td := intType()
	a := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(1)})
	b := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(1)})
	c := NewTypeInstance(td, map[string]ParameterValue{"Size": NewIntLiteral(2)})
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key())
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
