package procedure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ackbas/methodnet/internal/catalog"
	"github.com/ackbas/methodnet/internal/model"
	"github.com/ackbas/methodnet/internal/plan"
)

const minimalCatalogue = `
enums:
  MyEnum: [One, Two]
types:
  TypeOne:
    params:
      ValueOne: {type: Int}
  TypeTwo:
    params:
      ValueOne: {type: Int}
      ValueEnum: {type: MyEnum}
  TypeThree:
    params:
      ValueThree: {type: Int}
methods:
  Convert:
    inputs:
      in: {type: TypeOne, params: {ValueOne: n}}
    outputs:
      out: {type: TypeTwo, params: {ValueOne: n, ValueEnum: One}}
  Combine:
    inputs:
      objectOne: {type: TypeOne, params: {ValueOne: n}}
      objectTwo: {type: TypeTwo, params: {ValueEnum: One}}
    outputs:
      objectThree: {type: TypeThree, params: {ValueThree: n}}
`

func TestReconstructBuildsSoundAcyclicProcedure(t *testing.T) {
	g, err := catalog.Load([]byte(minimalCatalogue))
	require.NoError(t, err)

	startInst := model.NewTypeInstance(g.Types["TypeOne"], map[string]model.ParameterValue{"ValueOne": model.NewIntLiteral(42)})
	target := model.TargetDescription{Type: g.Types["TypeThree"]}

	result, err := plan.Search(context.Background(), g, []model.TypeInstance{startInst}, target, plan.Options{})
	require.NoError(t, err)

	proc, err := Reconstruct(result, []StartObject{{Name: "start", Instance: startInst}}, target)
	require.NoError(t, err)

	t.Run("every method input resolves to an already-registered node (soundness)", func(t *testing.T) {
		seen := map[*TypeNode]bool{}
		for _, tn := range proc.TypeNodes {
			seen[tn] = true
		}
		for _, mn := range proc.MethodNodes {
			for port, in := range mn.Inputs {
				require.True(t, seen[in], "input %s of %s must reference a node already present in the procedure", port, mn.Method.Name)
			}
		}
	})

	t.Run("construction order is a topological order: every input node precedes its method's own outputs", func(t *testing.T) {
		position := map[*TypeNode]int{}
		for i, tn := range proc.TypeNodes {
			position[tn] = i
		}
		for _, mn := range proc.MethodNodes {
			for _, out := range mn.Outputs {
				for _, in := range mn.Inputs {
					require.Less(t, position[in], position[out])
				}
			}
		}
	})

	t.Run("exactly one terminal node carries the target value", func(t *testing.T) {
		var terminal []*TypeNode
		for _, tn := range proc.TypeNodes {
			if tn.IsTerminal {
				terminal = append(terminal, tn)
			}
		}
		require.Len(t, terminal, 1)
		require.Equal(t, "TypeThree", terminal[0].Instance.Type.Name)
		require.True(t, terminal[0].Instance.Params["ValueThree"].Equal(model.NewIntLiteral(42)))
	})

	t.Run("start node carries the caller-given display name", func(t *testing.T) {
		require.Equal(t, "start", proc.TypeNodes[0].DisplayName)
		require.Nil(t, proc.TypeNodes[0].Producer)
	})

	t.Run("every type node has a unique display name", func(t *testing.T) {
		// every produced TypeNode's label is unique, never reused across
		// the procedure, even if two applications happen to produce
		// structurally equal instances.
		labels := map[string]bool{}
		for _, tn := range proc.TypeNodes {
			require.False(t, labels[tn.DisplayName], "duplicate display name %s", tn.DisplayName)
			labels[tn.DisplayName] = true
		}
	})
}

func TestReconstructTrivialStartHasNoMethodNodes(t *testing.T) {
	g, err := catalog.Load([]byte(minimalCatalogue))
	require.NoError(t, err)

	startInst := model.NewTypeInstance(g.Types["TypeThree"], map[string]model.ParameterValue{"ValueThree": model.NewIntLiteral(1)})
	target := model.TargetDescription{Type: g.Types["TypeThree"]}

	result, err := plan.Search(context.Background(), g, []model.TypeInstance{startInst}, target, plan.Options{})
	require.NoError(t, err)

	proc, err := Reconstruct(result, []StartObject{{Name: "start", Instance: startInst}}, target)
	require.NoError(t, err)
	require.Empty(t, proc.MethodNodes)
	require.Len(t, proc.TypeNodes, 1)
	require.True(t, proc.TypeNodes[0].IsTerminal)
}
