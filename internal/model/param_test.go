package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameterValueRender(t *testing.T) {
	enum := &ParameterType{Name: "Color", Values: []string{"Red", "Green", "Blue"}}

	t.Run("int literal renders decimal", func(t *testing.T) {
		require.Equal(t, "42", NewIntLiteral(42).Render())
	})

	t.Run("enum literal renders Type.Value", func(t *testing.T) {
		require.Equal(t, "Color.Green", NewEnumLiteral(enum, 1).Render())
	})

	t.Run("placeholder renders with dollar prefix", func(t *testing.T) {
		require.Equal(t, "$n", NewPlaceholder("n").Render())
	})

	t.Run("unset renders literally", func(t *testing.T) {
		require.Equal(t, "unset", Unset.Render())
	})
}

func TestParameterValueEqual(t *testing.T) {
	enum := &ParameterType{Name: "Color", Values: []string{"Red", "Green"}}
	otherEnum := &ParameterType{Name: "Shade", Values: []string{"Red", "Green"}}

	t.Run("int literals compare by value", func(t *testing.T) {
		require.True(t, NewIntLiteral(3).Equal(NewIntLiteral(3)))
		require.False(t, NewIntLiteral(3).Equal(NewIntLiteral(4)))
	})

	t.Run("enum literals compare by type name and index", func(t *testing.T) {
		require.True(t, NewEnumLiteral(enum, 0).Equal(NewEnumLiteral(enum, 0)))
		require.False(t, NewEnumLiteral(enum, 0).Equal(NewEnumLiteral(enum, 1)))
		require.False(t, NewEnumLiteral(enum, 0).Equal(NewEnumLiteral(otherEnum, 0)))
	})

	t.Run("different kinds never compare equal", func(t *testing.T) {
		require.False(t, NewIntLiteral(0).Equal(Unset))
		require.False(t, NewPlaceholder("n").Equal(NewIntLiteral(0)))
	})

	t.Run("unset values always compare equal", func(t *testing.T) {
		require.True(t, Unset.Equal(Unset))
	})
}

func TestParamMapKeyIsOrderIndependent(t *testing.T) {
	a := map[string]ParameterValue{"x": NewIntLiteral(1), "y": NewIntLiteral(2)}
	b := map[string]ParameterValue{"y": NewIntLiteral(2), "x": NewIntLiteral(1)}
	require.Equal(t, paramMapKey(a), paramMapKey(b))
}
