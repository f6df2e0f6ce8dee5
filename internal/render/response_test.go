package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ackbas/methodnet/internal/catalog"
	"github.com/ackbas/methodnet/internal/model"
	"github.com/ackbas/methodnet/internal/plan"
	"github.com/ackbas/methodnet/internal/procedure"
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

func buildProcedure(t *testing.T) (*procedure.Procedure, model.TargetDescription) {
	t.Helper()
	g, err := catalog.Load([]byte(minimalCatalogue))
	require.NoError(t, err)

	startInst := model.NewTypeInstance(g.Types["TypeOne"], map[string]model.ParameterValue{"ValueOne": model.NewIntLiteral(42)})
	target := model.TargetDescription{Type: g.Types["TypeThree"]}

	result, err := plan.Search(context.Background(), g, []model.TypeInstance{startInst}, target, plan.Options{})
	require.NoError(t, err)

	proc, err := procedure.Reconstruct(result, []procedure.StartObject{{Name: "start", Instance: startInst}}, target)
	require.NoError(t, err)
	return proc, target
}

func TestRenderResponseShape(t *testing.T) {
	proc, target := buildProcedure(t)
	resp := Render(proc, target)

	t.Run("every object and method has a unique id within a shared numbering space", func(t *testing.T) {
		seen := map[int]bool{}
		for _, o := range resp.Objects {
			require.False(t, seen[o.ID])
			seen[o.ID] = true
		}
		for _, m := range resp.Methods {
			require.False(t, seen[m.ID])
			seen[m.ID] = true
			for _, p := range m.Inputs {
				require.False(t, seen[p.ID])
				seen[p.ID] = true
			}
			for _, branch := range m.Outputs {
				for _, p := range branch {
					require.False(t, seen[p.ID])
					seen[p.ID] = true
				}
			}
		}
		require.Equal(t, resp.NextID, len(seen))
	})

	t.Run("start object is flagged is_start with distance zero", func(t *testing.T) {
		var start *ObjectRecord
		for i := range resp.Objects {
			if resp.Objects[i].IsStart {
				start = &resp.Objects[i]
			}
		}
		require.NotNil(t, start)
		require.Equal(t, 0, start.DistanceToStart)
	})

	t.Run("terminal object is flagged is_end", func(t *testing.T) {
		var end *ObjectRecord
		for i := range resp.Objects {
			if resp.Objects[i].IsEnd {
				end = &resp.Objects[i]
			}
		}
		require.NotNil(t, end)
		require.Equal(t, "TypeThree", end.Type)
		require.Equal(t, "42", end.Params["ValueThree"])
	})

	t.Run("distance_to_start increases along the chain of method applications", func(t *testing.T) {
		depths := map[string]int{}
		for _, o := range resp.Objects {
			depths[o.Type] = o.DistanceToStart
		}
		require.Less(t, depths["TypeOne"], depths["TypeTwo"])
		require.Less(t, depths["TypeTwo"], depths["TypeThree"])
	})

	t.Run("connections wire object to input port and output port to object", func(t *testing.T) {
		require.NotEmpty(t, resp.Connections)
		ids := map[int]bool{}
		for _, o := range resp.Objects {
			ids[o.ID] = true
		}
		for _, c := range resp.Connections {
			require.True(t, ids[c.FromID] || ids[c.ToID], "every connection touches at least one object id")
		}
	})
}

func TestEmptyResponseShape(t *testing.T) {
	resp := EmptyResponse()
	require.Empty(t, resp.Objects)
	require.Empty(t, resp.Methods)
	require.Empty(t, resp.Connections)
	require.Equal(t, 0, resp.NextID)
}
