package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ackbas/methodnet/internal/model"
)

var widget = &model.TypeDefinition{Name: "Widget", Params: map[string]model.ParameterDefinition{
	"Size": {Name: "Size", Type: &model.ParameterType{Name: "Int"}},
}}

func TestMergeProducedSubsumptionPrecedesDedup(t *testing.T) {
	t.Run("a more specific produced instance replaces a more general existing one", func(t *testing.T) {
		general := model.NewTypeInstance(widget, map[string]model.ParameterValue{})
		specific := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(5)})
		out, progress := mergeProduced([]model.TypeInstance{general}, []model.TypeInstance{specific})
		require.True(t, progress)
		require.Len(t, out, 1)
		require.True(t, out[0].Equal(specific))
	})

	t.Run("a more general produced instance is discarded when a specific one already subsumes it", func(t *testing.T) {
		specific := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(5)})
		general := model.NewTypeInstance(widget, map[string]model.ParameterValue{})
		out, progress := mergeProduced([]model.TypeInstance{specific}, []model.TypeInstance{general})
		require.False(t, progress)
		require.Len(t, out, 1)
		require.True(t, out[0].Equal(specific))
	})

	t.Run("an identical produced instance makes no progress", func(t *testing.T) {
		a := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(1)})
		b := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(1)})
		out, progress := mergeProduced([]model.TypeInstance{a}, []model.TypeInstance{b})
		require.False(t, progress)
		require.Len(t, out, 1)
	})

	t.Run("a genuinely new instance is appended", func(t *testing.T) {
		a := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(1)})
		b := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(2)})
		out, progress := mergeProduced([]model.TypeInstance{a}, []model.TypeInstance{b})
		require.True(t, progress)
		require.Len(t, out, 2)
	})
}

func TestCandidateNodeKeyIsSetIdentity(t *testing.T) {
	a := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(1)})
	b := model.NewTypeInstance(widget, map[string]model.ParameterValue{"Size": model.NewIntLiteral(2)})

	n1 := newCandidateNode([]model.TypeInstance{a, b}, 0, nil)
	n2 := newCandidateNode([]model.TypeInstance{b, a}, 5, nil)
	require.Equal(t, n1.Key(), n2.Key(), "set identity is order-independent and ignores CumDist")
}
